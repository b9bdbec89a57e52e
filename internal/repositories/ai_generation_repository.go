package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

type AIGenerationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, generation *models.AIGeneration) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]models.AIGeneration, error)
}
