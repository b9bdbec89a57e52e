package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
	"github.com/mentorhub/mentor-qa-service/internal/repositories/postgres"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

type harness struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	events    *events.MockEventPublisher
	cache     *cache.CacheManager
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithRedis(t, nil)
}

func newHarnessWithRedis(t *testing.T, client *redis.Client) *harness {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &harness{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db, RedisClient: client}),
		logger:    log,
		validator: validator.New(),
		events:    events.NewMockEventPublisher(log),
		cache:     cache.NewCacheManager(client),
	}
}

func (h *harness) auth() AuthService {
	return NewAuthService(h.repo, h.logger, h.validator, h.events)
}

func (h *harness) questions() QuestionService {
	return NewQuestionService(h.repo, h.cache, h.logger, h.validator, h.events)
}

func (h *harness) mentors() MentorService {
	return NewMentorService(h.repo, h.cache, h.logger, h.validator, h.events)
}

// register signs up a user through the auth service with password "password123".
func (h *harness) register(t *testing.T, username, fullname string, role models.UserRole) *models.User {
	t.Helper()
	res, err := h.auth().Register(context.Background(), &RegisterRequest{
		Username: username,
		Fullname: fullname,
		Email:    username + "@example.com",
		Password: "password123",
		Role:     string(role),
	})
	if err != nil {
		t.Fatalf("Register(%s) error = %v", username, err)
	}
	return res.User
}

func (h *harness) postQuestion(t *testing.T, studentID uint, title string) *models.Question {
	t.Helper()
	q, err := h.questions().Create(context.Background(), studentID, &CreateQuestionRequest{
		Title:    title,
		Content:  "Details about " + title,
		Category: "programming",
	})
	if err != nil {
		t.Fatalf("Create(%s) error = %v", title, err)
	}
	return q
}

func (h *harness) eventTypes() []string {
	var out []string
	for _, e := range h.events.GetPublishedEvents() {
		out = append(out, e.Type)
	}
	return out
}

// fakeGenerator records every call and answers with reply or err.
type fakeGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	messages [][]models.ChatMessage
	opts     []llm.GenerateOptions
}

func (f *fakeGenerator) Generate(_ context.Context, messages []models.ChatMessage, opts llm.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, messages)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeGenerator) lastUserPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	last := f.messages[len(f.messages)-1]
	return last[len(last)-1].Content
}
