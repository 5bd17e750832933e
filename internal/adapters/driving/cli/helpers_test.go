package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// setupTestServices installs happy-path mocks for every service and
// returns a cleanup function restoring the previous wiring.
func setupTestServices() func() {
	oldAnswer := answerService
	oldSearch := searchService
	oldIndex := indexService
	oldDocument := documentService
	oldSettings := settingsService

	answerService = &mockAnswerService{}
	searchService = &mockSearchService{}
	indexService = &mockIndexService{}
	documentService = &mockDocumentService{}
	settingsService = &mockSettingsService{}

	return func() {
		answerService = oldAnswer
		searchService = oldSearch
		indexService = oldIndex
		documentService = oldDocument
		settingsService = oldSettings
	}
}

// testDocuments returns the fixture documents used across command tests.
func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:       "doc-1",
			Category: "manuals",
			Title:    "Printer Manual",
			RelPath:  "manuals/printer.pdf",
			Pages:    24,
		},
		{
			ID:       "doc-2",
			Category: "policies",
			Title:    "Retention Policy",
			RelPath:  "policies/retention.md",
			Pages:    1,
		},
	}
}

// mockAnswerService implements driving.AnswerService for testing.
type mockAnswerService struct{}

func (m *mockAnswerService) Ask(_ context.Context, _ string, _ domain.QueryOptions) (*domain.Answer, error) {
	return &domain.Answer{
		Text:  "The retention period is 90 days [1].",
		Model: "gpt-4o-mini",
		Sources: []domain.SourceRef{
			{
				DocumentID: "doc-2",
				Title:      "Retention Policy",
				Category:   "policies",
				RelPath:    "policies/retention.md",
				Page:       1,
				Preview:    "Records are kept for 90 days...",
				Score:      0.91,
			},
		},
		CreatedAt: time.Date(2025, 6, 12, 10, 2, 0, 0, time.UTC),
	}, nil
}

// mockAnswerServiceNoSources returns an answer with no citations.
type mockAnswerServiceNoSources struct{}

func (m *mockAnswerServiceNoSources) Ask(_ context.Context, _ string, _ domain.QueryOptions) (*domain.Answer, error) {
	return &domain.Answer{
		Text:  "I could not find anything about that in the library.",
		Model: "gpt-4o-mini",
	}, nil
}

// mockAnswerServiceError implements driving.AnswerService and always fails.
type mockAnswerServiceError struct{}

func (m *mockAnswerServiceError) Ask(_ context.Context, _ string, _ domain.QueryOptions) (*domain.Answer, error) {
	return nil, errors.New("llm unavailable")
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct{}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.RetrievedChunk, error) {
	docs := testDocuments()
	return []domain.RetrievedChunk{
		{
			Document: docs[0],
			Chunk: domain.Chunk{
				ID:         "chunk-1",
				DocumentID: "doc-1",
				Seq:        3,
				Page:       12,
				Content:    "Hold the reset button for five seconds.",
			},
			Score: 0.87,
		},
	}, nil
}

// mockSearchServiceEmpty returns no results.
type mockSearchServiceEmpty struct{}

func (m *mockSearchServiceEmpty) Search(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.RetrievedChunk, error) {
	return []domain.RetrievedChunk{}, nil
}

// mockSearchServiceError implements driving.SearchService and always fails.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.RetrievedChunk, error) {
	return nil, errors.New("embedding service unavailable")
}

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct{}

func (m *mockIndexService) Reindex(_ context.Context) (*domain.IndexReport, error) {
	started := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	return &domain.IndexReport{
		Generation:    "gen-1",
		StartedAt:     started,
		FinishedAt:    started.Add(42 * time.Second),
		DocumentCount: 2,
		ChunkCount:    57,
	}, nil
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStatus, error) {
	return &domain.IndexStatus{
		Generation:          "gen-1",
		BuiltAt:             time.Date(2025, 6, 12, 10, 0, 42, 0, time.UTC),
		DocumentCount:       2,
		ChunkCount:          57,
		Categories:          map[string]int{"manuals": 1, "policies": 1},
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
	}, nil
}

func (m *mockIndexService) Running() bool {
	return false
}

// mockIndexServiceEmpty reports an unbuilt index.
type mockIndexServiceEmpty struct{}

func (m *mockIndexServiceEmpty) Reindex(_ context.Context) (*domain.IndexReport, error) {
	return &domain.IndexReport{}, nil
}

func (m *mockIndexServiceEmpty) Status(_ context.Context) (*domain.IndexStatus, error) {
	return nil, domain.ErrIndexEmpty
}

func (m *mockIndexServiceEmpty) Running() bool {
	return false
}

// mockIndexServiceRunning reports a rebuild already in flight.
type mockIndexServiceRunning struct {
	mockIndexService
}

func (m *mockIndexServiceRunning) Reindex(_ context.Context) (*domain.IndexReport, error) {
	return nil, domain.ErrReindexRunning
}

func (m *mockIndexServiceRunning) Running() bool {
	return true
}

// mockIndexServiceError implements driving.IndexService and always fails.
type mockIndexServiceError struct{}

func (m *mockIndexServiceError) Reindex(_ context.Context) (*domain.IndexReport, error) {
	return nil, errors.New("embedding service unavailable")
}

func (m *mockIndexServiceError) Status(_ context.Context) (*domain.IndexStatus, error) {
	return nil, errors.New("state store unavailable")
}

func (m *mockIndexServiceError) Running() bool {
	return false
}

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct{}

func (m *mockDocumentService) List(_ context.Context, category string) ([]domain.Document, error) {
	docs := testDocuments()
	if category == "" {
		return docs, nil
	}
	filtered := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Category == category {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	doc := testDocuments()[0]
	doc.IndexedAt = time.Date(2025, 6, 12, 10, 0, 42, 0, time.UTC)
	return &doc, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return "Hold the reset button for five seconds to restore factory defaults.", nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return &driving.DocumentDetails{
		ID:         "doc-1",
		Title:      "Printer Manual",
		Category:   "manuals",
		RelPath:    "manuals/printer.pdf",
		Pages:      24,
		ChunkCount: 42,
		SizeBytes:  2048,
		ModTime:    time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		IndexedAt:  time.Date(2025, 6, 12, 10, 0, 42, 0, time.UTC),
	}, nil
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return nil
}

// mockDocumentServiceEmpty returns no documents.
type mockDocumentServiceEmpty struct {
	mockDocumentService
}

func (m *mockDocumentServiceEmpty) List(_ context.Context, _ string) ([]domain.Document, error) {
	return []domain.Document{}, nil
}

// mockDocumentServiceError implements driving.DocumentService and always fails.
type mockDocumentServiceError struct{}

func (m *mockDocumentServiceError) List(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, errors.New("store unavailable")
}

func (m *mockDocumentServiceError) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, errors.New("store unavailable")
}

func (m *mockDocumentServiceError) GetContent(_ context.Context, _ string) (string, error) {
	return "", errors.New("store unavailable")
}

func (m *mockDocumentServiceError) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return nil, errors.New("store unavailable")
}

func (m *mockDocumentServiceError) Open(_ context.Context, _ string) error {
	return errors.New("store unavailable")
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	lastLibraryRoot string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return nil
}

func (m *mockSettingsService) SetLibraryRoot(root string) error {
	m.lastLibraryRoot = root
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return nil
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return nil
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return nil
}
