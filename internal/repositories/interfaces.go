package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// ErrNotFound is returned (wrapped) by every lookup that matched no row.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the requested row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

// QuestionFilters narrows question listings. Nil fields are ignored.
type QuestionFilters struct {
	StudentID *uint                    `json:"student_id"`
	Status    *models.QuestionStatus   `json:"status"`
	Category  *models.QuestionCategory `json:"category"`
	// WithAnswers preloads answers (oldest first) and their mentors.
	WithAnswers bool `json:"with_answers"`
	// WithStudent preloads the asking student.
	WithStudent bool `json:"with_student"`
}
