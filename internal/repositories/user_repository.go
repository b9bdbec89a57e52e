package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// UserRepository owns the local user accounts.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error

	// Delete removes the user together with the profile, the user's questions
	// (and every answer on them), the user's own answers and AI audit rows.
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

// ProfileRepository stores the role attached to each user.
type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error)
	GetRole(ctx context.Context, tx *gorm.DB, userID uint) (models.UserRole, error)
}
