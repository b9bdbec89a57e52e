package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// DashboardRepository runs the aggregate queries behind the mentor dashboard.
type DashboardRepository interface {
	CountQuestionsByStatus(ctx context.Context, tx *gorm.DB) (map[models.QuestionStatus]int64, error)
	CountUniqueStudents(ctx context.Context, tx *gorm.DB) (int64, error)
	CountAnswers(ctx context.Context, tx *gorm.DB) (int64, error)
}
