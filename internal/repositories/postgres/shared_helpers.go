package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

// useDB returns tx when the caller is inside a transaction, db otherwise.
func useDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// wrapLookupError turns gorm.ErrRecordNotFound into repositories.ErrNotFound
// and wraps everything else with the operation name.
func wrapLookupError(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, key, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

func applyQuestionFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("questions.student_id = ?", *filters.StudentID)
	}
	if filters.Status != nil {
		query = query.Where("questions.status = ?", *filters.Status)
	}
	if filters.Category != nil {
		query = query.Where("questions.category = ?", *filters.Category)
	}
	if filters.WithStudent {
		query = query.Preload("Student")
	}
	if filters.WithAnswers {
		query = query.
			Preload("Answers", func(db *gorm.DB) *gorm.DB {
				return db.Order("answers.created_at ASC, answers.id ASC")
			}).
			Preload("Answers.Mentor")
	}
	return query
}
