package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mentorhub/mentor-qa-service/internal/config"
	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion server.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAILoader returns a Loader that connects to cfg.BaseURL and checks
// that cfg.Model is served there.
func NewOpenAILoader(cfg config.LLMConfig) Loader {
	return func(ctx context.Context) (Generator, error) {
		if cfg.BaseURL == "" {
			return nil, errors.New("LLM_BASE_URL is not configured")
		}

		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		client := openai.NewClientWithConfig(clientCfg)

		if _, err := client.GetModel(ctx, cfg.Model); err != nil {
			return nil, fmt.Errorf("model %q not available: %w", cfg.Model, err)
		}
		return &OpenAIGenerator{client: client, model: cfg.Model}, nil
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, messages []models.ChatMessage, opts GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
