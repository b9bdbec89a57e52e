package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// ErrModelUnavailable is returned when the model could not be loaded.
var ErrModelUnavailable = errors.New("language model unavailable")

type GenerateOptions struct {
	MaxTokens   int
	Temperature float32
}

// Generator turns a chat transcript into a completion.
type Generator interface {
	Generate(ctx context.Context, messages []models.ChatMessage, opts GenerateOptions) (string, error)
}

// Loader builds a Generator. It is called at most once per successful load.
type Loader func(ctx context.Context) (Generator, error)

// Model is the process wide handle to the language model. The first caller
// loads it; concurrent callers wait for that load. A failed load is not
// remembered, so the next call tries again.
type Model struct {
	mu     sync.RWMutex
	gen    Generator
	load   Loader
	logger *slog.Logger
}

func NewModel(load Loader, logger *slog.Logger) *Model {
	return &Model{load: load, logger: logger}
}

// Get returns the loaded generator, loading it on first use.
func (m *Model) Get(ctx context.Context) (Generator, error) {
	m.mu.RLock()
	gen := m.gen
	m.mu.RUnlock()
	if gen != nil {
		return gen, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != nil {
		return m.gen, nil
	}

	m.logger.Info("Loading language model")
	gen, err := m.load(ctx)
	if err != nil {
		m.logger.Error("Failed to load language model", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	m.gen = gen
	m.logger.Info("Language model loaded")
	return gen, nil
}

// Loaded reports whether a previous Get succeeded.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen != nil
}

// Generate loads the model if needed and runs one completion.
func (m *Model) Generate(ctx context.Context, messages []models.ChatMessage, opts GenerateOptions) (string, error) {
	gen, err := m.Get(ctx)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, messages, opts)
}
