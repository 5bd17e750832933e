// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultLLMModel is the generation model used when none is configured.
const DefaultLLMModel = "gemini-2.5-flash"

// LLMConfig holds configuration for the Gemini LLM service.
type LLMConfig struct {
	// APIKey is the Google AI API key (required).
	APIKey string

	// Model is the LLM model to use (default: gemini-2.5-flash).
	Model string
}

// LLMService provides LLM operations using the Gemini API.
type LLMService struct {
	client    *genai.Client
	modelName string
}

// NewLLMService creates a new Gemini LLM service. The context is used
// for client construction only.
func NewLLMService(ctx context.Context, cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{
		client:    client,
		modelName: cfg.Model,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	model := s.generativeModel(opts.MaxTokens, opts.Temperature, opts.StopWords)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", s.wrapError(err)
	}

	return collectText(resp)
}

// Chat conducts a multi-turn conversation.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("gemini: no messages to send")
	}

	model := s.generativeModel(opts.MaxTokens, opts.Temperature, nil)

	// Gemini takes the system prompt as a model-level instruction and
	// everything before the final message as chat history.
	var history []*genai.Content
	for _, msg := range messages[:len(messages)-1] {
		switch msg.Role {
		case "system":
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
		case "assistant":
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(messages[len(messages)-1].Content))
	if err != nil {
		return "", s.wrapError(err)
	}

	return collectText(resp)
}

// generativeModel builds a model handle with per-call generation options.
// Handles are cheap, and a fresh one keeps concurrent calls from sharing
// mutable config.
func (s *LLMService) generativeModel(maxTokens int, temperature float64, stopWords []string) *genai.GenerativeModel {
	model := s.client.GenerativeModel(s.modelName)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	if temperature > 0 {
		model.SetTemperature(float32(temperature))
	}
	if len(stopWords) > 0 {
		model.StopSequences = stopWords
	}
	return model
}

// collectText concatenates the text parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) (string, error) {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}

	if result.Len() == 0 {
		return "", fmt.Errorf("gemini: no response content returned")
	}
	return result.String(), nil
}

// wrapError maps quota errors onto the domain sentinel.
func (s *LLMService) wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 429 {
		return fmt.Errorf("gemini: %w", domain.ErrRateLimited)
	}
	return fmt.Errorf("gemini: %w", err)
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.modelName
}

// Ping validates the API key by fetching the model metadata.
// No inference runs, so the call is cheap.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.GenerativeModel(s.modelName).Info(ctx); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC client.
func (s *LLMService) Close() error {
	return s.client.Close()
}
