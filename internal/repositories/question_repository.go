package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)

	// List returns questions newest first.
	List(ctx context.Context, tx *gorm.DB, filters QuestionFilters) ([]models.Question, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.QuestionStatus) error

	// DeleteOwned deletes the question only when it belongs to studentID.
	// Returns ErrNotFound when no such question exists for that student.
	DeleteOwned(ctx context.Context, tx *gorm.DB, id uint, studentID uint) error
}

type AnswerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error
	// ListAll returns every answer with its mentor, ordered by question then age.
	ListAll(ctx context.Context, tx *gorm.DB) ([]models.Answer, error)
}
