package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

type aiGenerationRepository struct {
	db *gorm.DB
}

func NewAIGenerationRepository(db *gorm.DB) repositories.AIGenerationRepository {
	return &aiGenerationRepository{db: db}
}

func (r *aiGenerationRepository) Create(ctx context.Context, tx *gorm.DB, generation *models.AIGeneration) error {
	db := useDB(r.db, tx)
	if err := db.WithContext(ctx).Create(generation).Error; err != nil {
		return fmt.Errorf("failed to record ai generation: %w", err)
	}
	return nil
}

func (r *aiGenerationRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]models.AIGeneration, error) {
	db := useDB(r.db, tx)
	if limit <= 0 {
		limit = 20
	}

	var generations []models.AIGeneration
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&generations).Error; err != nil {
		return nil, fmt.Errorf("failed to list ai generations: %w", err)
	}
	return generations, nil
}
