package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
)

type assistService struct {
	repo     repositories.Repository
	model    llm.Generator
	cache    *cache.CacheHelper
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewAssistService wires the model and the translation cache. A nil cache
// helper or one without a Redis client disables caching.
func NewAssistService(repo repositories.Repository, model llm.Generator, translationCache *cache.CacheHelper, cacheTTL time.Duration, logger *slog.Logger) AssistService {
	if cacheTTL <= 0 {
		cacheTTL = cache.TranslationCacheConfig.TTL
	}
	return &assistService{
		repo:     repo,
		model:    model,
		cache:    translationCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *assistService) GenerateAnswer(ctx context.Context, userID uint, req *GenerateAnswerRequest) (*GeneratedAnswer, error) {
	if req.QuestionID.Missing() {
		return nil, NewValidationError("Question ID is required")
	}
	if req.QuestionID.Invalid {
		return nil, ErrQuestionNotFound
	}

	question, err := s.repo.Question().GetByID(ctx, nil, req.QuestionID.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	messages := answerMessages(question.Title, question.Content, req.ContextPrompt)
	output, genErr := s.generate(ctx, messages, answerOptions)

	s.record(ctx, &models.AIGeneration{
		UserID:     userID,
		QuestionID: &question.ID,
		Kind:       models.GenerationAnswer,
		Output:     output,
		Success:    genErr == nil,
	}, messages)

	if genErr != nil {
		s.logger.Error("AI answer generation failed", "question_id", question.ID, "error", genErr)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, genErr)
	}

	return &GeneratedAnswer{
		Answer:          output,
		QuestionTitle:   question.Title,
		QuestionContent: question.Content,
	}, nil
}

func (s *assistService) Translate(ctx context.Context, userID uint, req *TranslateRequest) (*Translation, error) {
	if req.Text == "" {
		return nil, NewValidationError("No text provided")
	}
	language := req.Language
	if language == "" {
		language = defaultTargetLanguage
	}

	result := &Translation{OriginalText: req.Text, TargetLanguage: language}
	key := translationKey(req.Text, language)

	if cached, err := s.cache.GetString(ctx, key); err == nil {
		result.Text = cached
		return result, nil
	}

	messages := translationMessages(req.Text, language)
	output, genErr := s.generate(ctx, messages, translationOptions)
	if genErr != nil {
		s.logger.Warn("Translation failed, using fallback", "language", language, "error", genErr)
		result.Text = fallbackTranslate(req.Text, language)
		result.Fallback = true
	} else {
		result.Text = output
		if err := s.cache.SetString(ctx, key, output, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache translation", "error", err)
		}
	}

	s.record(ctx, &models.AIGeneration{
		UserID:         userID,
		Kind:           models.GenerationTranslation,
		TargetLanguage: language,
		Output:         result.Text,
		Fallback:       result.Fallback,
		Success:        genErr == nil,
	}, messages)

	return result, nil
}

// generate treats an empty completion as a failure.
func (s *assistService) generate(ctx context.Context, messages []models.ChatMessage, opts llm.GenerateOptions) (string, error) {
	if s.model == nil {
		return "", llm.ErrModelUnavailable
	}
	output, err := s.model.Generate(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	output = strings.TrimSpace(output)
	if output == "" {
		return "", errors.New("model returned an empty completion")
	}
	return output, nil
}

// record writes the audit row. Failures are logged and otherwise ignored.
func (s *assistService) record(ctx context.Context, generation *models.AIGeneration, messages []models.ChatMessage) {
	payload, err := json.Marshal(messages)
	if err != nil {
		s.logger.Warn("Failed to encode AI prompt", "error", err)
	} else {
		generation.Messages = datatypes.JSON(payload)
	}
	if err := s.repo.AIGeneration().Create(ctx, nil, generation); err != nil {
		s.logger.Warn("Failed to record AI generation", "kind", generation.Kind, "error", err)
	}
}

// translationKey is "<language>:<sha256 of text>".
func translationKey(text, language string) string {
	sum := sha256.Sum256([]byte(text))
	return strings.ToLower(language) + ":" + hex.EncodeToString(sum[:])
}
