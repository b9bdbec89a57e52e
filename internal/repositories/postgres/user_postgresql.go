package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := useDB(u.db, tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := useDB(u.db, tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapLookupError(err, "user", id)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := useDB(u.db, tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapLookupError(err, "user", email)
	}
	return &user, nil
}

func (u *UserPostgreSQL) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	return u.exists(ctx, tx, "username", username)
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	return u.exists(ctx, tx, "email", email)
}

func (u *UserPostgreSQL) exists(ctx context.Context, tx *gorm.DB, column, value string) (bool, error) {
	db := useDB(u.db, tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where(column+" = ?", value).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", column, err)
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error {
	db := useDB(u.db, tx)
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// Delete removes the user and everything hanging off it in one transaction.
// Rows are deleted explicitly so the cascade holds even where the schema was
// created without ON DELETE CASCADE.
func (u *UserPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := useDB(u.db, tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownQuestions := tx.Model(&models.Question{}).Select("id").Where("student_id = ?", id)

		if err := tx.Where("question_id IN (?)", ownQuestions).Delete(&models.Answer{}).Error; err != nil {
			return fmt.Errorf("failed to delete answers on user questions: %w", err)
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete user questions: %w", err)
		}
		if err := tx.Where("mentor_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return fmt.Errorf("failed to delete user answers: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.AIGeneration{}).Error; err != nil {
			return fmt.Errorf("failed to delete user ai generations: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
			return fmt.Errorf("failed to delete user profile: %w", err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUserCache(ctx, u.cacheManager, id)
	return nil
}

type ProfilePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewProfilePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ProfileRepository {
	return &ProfilePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (p *ProfilePostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	db := useDB(p.db, tx)
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}

	cache.SafeDelete(ctx, p.cacheManager.Role, cache.RoleKey(profile.UserID))
	return nil
}

func (p *ProfilePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	db := useDB(p.db, tx)
	var profile models.UserProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, wrapLookupError(err, "user profile", userID)
	}
	return &profile, nil
}

// GetRole is the cached lookup used on every page render.
func (p *ProfilePostgreSQL) GetRole(ctx context.Context, tx *gorm.DB, userID uint) (models.UserRole, error) {
	// inside a transaction the cache could hide uncommitted writes
	if tx != nil {
		profile, err := p.GetByUserID(ctx, tx, userID)
		if err != nil {
			return "", err
		}
		return profile.Role, nil
	}

	var role models.UserRole
	err := p.cacheManager.Role.CacheOrExecute(ctx, cache.RoleKey(userID), &role, cache.RoleCacheConfig.TTL, func() (interface{}, error) {
		profile, err := p.GetByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
		return profile.Role, nil
	})
	if err != nil {
		return "", err
	}
	return role, nil
}
