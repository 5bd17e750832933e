// Package gemini provides an embedding service adapter using the
// Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/docent/internal/adapters/driven/embedding"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "text-embedding-004"
	DefaultDimensions = 768
)

// Model dimensions for Gemini embedding models.
var modelDimensions = map[string]int{
	"text-embedding-004": 768,
	"embedding-001":      768,
}

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string

	// Dimensions overrides the default dimension for the model.
	Dimensions int
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *genai.Client
	model      *genai.EmbeddingModel
	limiter    *embedding.RateLimiter
	modelName  string
	dimensions int
}

// NewEmbeddingService creates a new Gemini embedding service.
// The context is used for client construction only.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	dimensions := cfg.Dimensions
	if dimensions == 0 {
		var ok bool
		dimensions, ok = modelDimensions[cfg.Model]
		if !ok {
			dimensions = DefaultDimensions
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &EmbeddingService{
		client:     client,
		model:      client.EmbeddingModel(cfg.Model),
		limiter:    embedding.NewRateLimiter(domain.AIProviderGemini),
		modelName:  cfg.Model,
		dimensions: dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, s.wrapError(err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini: no embedding returned")
	}
	return resp.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts using the batch
// embed API. Texts are sent in batches and each request waits on the
// provider rate limiter.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for _, batch := range embedding.Batches(texts) {
		vectors, err := s.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, vectors...)
	}
	return embeddings, nil
}

// embedBatch sends one batch to the batch embed endpoint.
func (s *EmbeddingService) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	batch := s.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := s.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, s.wrapError(err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini: expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	embeddings := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("gemini: missing embedding at index %d", i)
		}
		embeddings[i] = e.Values
	}
	return embeddings, nil
}

// wrapError maps quota errors onto the domain sentinel and records
// the backoff so later calls wait it out.
func (s *EmbeddingService) wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 429 {
		s.limiter.RecordRateLimitError(0)
		return fmt.Errorf("gemini: %w", domain.ErrRateLimited)
	}
	return fmt.Errorf("gemini: %w", err)
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.modelName
}

// Ping validates the API key by fetching the model metadata.
// No inference runs, so the call is cheap.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.model.Info(ctx); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC client.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}
