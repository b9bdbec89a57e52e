package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// ===== DASHBOARD STATS =====

func (r *dashboardRepository) CountQuestionsByStatus(ctx context.Context, tx *gorm.DB) (map[models.QuestionStatus]int64, error) {
	db := useDB(r.db, tx)

	var rows []struct {
		Status models.QuestionStatus
		Count  int64
	}
	if err := db.WithContext(ctx).
		Model(&models.Question{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count questions by status: %w", err)
	}

	counts := make(map[models.QuestionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) CountUniqueStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := useDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Question{}).
		Distinct("student_id").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unique students: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountAnswers(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := useDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Answer{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}
