package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

type mentorService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewMentorService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) MentorService {
	return &mentorService{
		repo:      repo,
		cache:     cacheManager,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ListQuestions returns questions newest first, with the asking student and
// the answers (oldest first) preloaded.
func (s *mentorService) ListQuestions(ctx context.Context, filter BoardFilter) ([]models.Question, error) {
	filters := repositories.QuestionFilters{
		WithStudent: true,
		WithAnswers: true,
	}
	if status := models.QuestionStatus(filter.Status); status.IsValid() {
		filters.Status = &status
	}
	if category := models.QuestionCategory(filter.Category); category.IsValid() {
		filters.Category = &category
	}

	questions, err := s.repo.Question().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Answer records an answer and marks the question answered in one
// transaction. Any mentor may answer any question.
func (s *mentorService) Answer(ctx context.Context, mentorID uint, req *CreateAnswerRequest) (*AnswerResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs.FirstMessage(validator.AnswerRulePrecedence))
	}

	if req.QuestionID.Invalid {
		return nil, ErrQuestionNotFound
	}
	questionID := req.QuestionID.ID

	mentor, err := s.repo.User().GetByID(ctx, nil, mentorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	var question *models.Question
	answer := &models.Answer{
		QuestionID: questionID,
		MentorID:   mentorID,
		Content:    req.AnswerContent,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		q, err := txRepo.Question().GetByID(ctx, nil, questionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrQuestionNotFound
			}
			return err
		}
		question = q

		if err := txRepo.Answer().Create(ctx, nil, answer); err != nil {
			return err
		}
		return txRepo.Question().UpdateStatus(ctx, nil, questionID, models.StatusAnswered)
	})
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}
	cache.InvalidateBoardCache(ctx, s.cache)

	s.logger.Info("Question answered", "question_id", questionID, "answer_id", answer.ID, "mentor_id", mentorID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionAnswered, events.QuestionAnsweredData{
		QuestionID: questionID,
		AnswerID:   answer.ID,
		MentorID:   mentorID,
		StudentID:  question.StudentID,
	}))

	return &AnswerResult{Answer: answer, Mentor: mentor}, nil
}
