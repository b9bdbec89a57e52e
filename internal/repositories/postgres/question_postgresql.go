package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

// QuestionPostgreSQL leaves board cache invalidation to its callers, which
// know when the surrounding transaction has committed.
type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := useDB(q.db, tx)
	if question.Status == "" {
		question.Status = models.StatusPending
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	db := useDB(q.db, tx)
	var question models.Question
	if err := db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, wrapLookupError(err, "question", id)
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]models.Question, error) {
	db := useDB(q.db, tx)
	var questions []models.Question

	query := applyQuestionFilters(db.WithContext(ctx).Model(&models.Question{}), filters)
	if err := query.
		Order("questions.created_at DESC, questions.id DESC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.QuestionStatus) error {
	db := useDB(q.db, tx)
	result := db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update question status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (q *QuestionPostgreSQL) DeleteOwned(ctx context.Context, tx *gorm.DB, id uint, studentID uint) error {
	db := useDB(q.db, tx)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.Select("id").
			Where("id = ? AND student_id = ?", id, studentID).
			First(&question).Error; err != nil {
			return wrapLookupError(err, "question", id)
		}

		// answers first due to foreign key constraint
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return fmt.Errorf("failed to delete question answers: %w", err)
		}
		if err := tx.Model(&models.AIGeneration{}).
			Where("question_id = ?", id).
			Update("question_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach ai generations: %w", err)
		}
		if err := tx.Delete(&models.Question{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete question: %w", err)
		}
		return nil
	})
}
