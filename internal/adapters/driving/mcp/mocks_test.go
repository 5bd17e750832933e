package mcp

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer *domain.Answer
	err    error

	lastQuestion string
	lastOpts     domain.QueryOptions
}

func (m *mockAnswerService) Ask(
	_ context.Context,
	question string,
	opts domain.QueryOptions,
) (*domain.Answer, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	return m.answer, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.RetrievedChunk
	err     error

	lastQuery string
	lastOpts  domain.QueryOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.QueryOptions,
) ([]domain.RetrievedChunk, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	err       error

	lastCategory string
}

func (m *mockDocumentService) List(_ context.Context, category string) ([]domain.Document, error) {
	m.lastCategory = category
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}
