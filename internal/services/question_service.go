package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuestionService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     cacheManager,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== CORE OPERATIONS =====

func (s *questionService) Create(ctx context.Context, studentID uint, req *CreateQuestionRequest) (*models.Question, error) {
	s.logger.Info("Creating question", "student_id", studentID, "category", req.Category)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs.FirstMessage(validator.QuestionRulePrecedence))
	}

	question := &models.Question{
		StudentID: studentID,
		Title:     req.Title,
		Content:   req.Content,
		Category:  models.QuestionCategory(req.Category),
		Status:    models.StatusPending,
	}
	if err := s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	cache.InvalidateBoardCache(ctx, s.cache)

	s.logger.Info("Question created successfully", "question_id", question.ID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionPosted, events.QuestionPostedData{
		QuestionID: question.ID,
		StudentID:  studentID,
		Title:      question.Title,
		Category:   string(question.Category),
	}))

	return question, nil
}

func (s *questionService) ListByStudent(ctx context.Context, studentID uint) ([]models.Question, error) {
	questions, err := s.repo.Question().List(ctx, nil, repositories.QuestionFilters{
		StudentID:   &studentID,
		WithAnswers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Delete removes a question owned by studentID. Questions belonging to
// someone else are reported as not found.
func (s *questionService) Delete(ctx context.Context, questionID, studentID uint) error {
	if err := s.repo.Question().DeleteOwned(ctx, nil, questionID, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}
	cache.InvalidateBoardCache(ctx, s.cache)

	s.logger.Info("Question deleted", "question_id", questionID, "student_id", studentID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionDeleted, events.QuestionDeletedData{
		QuestionID: questionID,
		StudentID:  studentID,
	}))
	return nil
}
