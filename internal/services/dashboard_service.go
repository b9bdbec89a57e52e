package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

const statsCacheKey = "board"

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheHelper
	logger *slog.Logger
}

// NewDashboardService builds the mentor dashboard. Stats are cached under the
// stats helper and dropped by the question and mentor services once a write
// has committed.
func NewDashboardService(repo repositories.Repository, statsCache *cache.CacheHelper, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  statsCache,
		logger: logger,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.cache.CacheOrExecute(ctx, statsCacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *dashboardService) computeStats(ctx context.Context) (*models.DashboardStats, error) {
	byStatus, err := s.repo.Dashboard().CountQuestionsByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	students, err := s.repo.Dashboard().CountUniqueStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	answers, err := s.repo.Dashboard().CountAnswers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}

	stats := &models.DashboardStats{
		PendingQuestions:  byStatus[models.StatusPending],
		AnsweredQuestions: byStatus[models.StatusAnswered],
		ClosedQuestions:   byStatus[models.StatusClosed],
		UniqueStudents:    students,
		TotalAnswers:      answers,
	}
	for _, count := range byStatus {
		stats.TotalQuestions += count
	}

	s.logger.Debug("Dashboard stats computed", "total_questions", stats.TotalQuestions, "total_answers", stats.TotalAnswers)
	return stats, nil
}
