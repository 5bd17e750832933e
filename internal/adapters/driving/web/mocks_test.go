package web

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	conversation *domain.Conversation
	answer       *domain.Answer
	startErr     error
	askErr       error

	lastConversationID string
	lastQuestion       string
	lastOpts           domain.QueryOptions
}

func (m *mockChatService) StartConversation(_ context.Context) (*domain.Conversation, error) {
	return m.conversation, m.startErr
}

func (m *mockChatService) Ask(
	_ context.Context,
	conversationID, question string,
	opts domain.QueryOptions,
) (*domain.Answer, error) {
	m.lastConversationID = conversationID
	m.lastQuestion = question
	m.lastOpts = opts
	return m.answer, m.askErr
}

func (m *mockChatService) GetConversation(_ context.Context, _ string) (*domain.Conversation, error) {
	return m.conversation, m.askErr
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	status  *domain.IndexStatus
	report  *domain.IndexReport
	running bool

	statusErr  error
	reindexErr error

	reindexCalled chan struct{}
}

func (m *mockIndexService) Reindex(_ context.Context) (*domain.IndexReport, error) {
	if m.reindexCalled != nil {
		close(m.reindexCalled)
	}
	return m.report, m.reindexErr
}

func (m *mockIndexService) Status(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.statusErr
}

func (m *mockIndexService) Running() bool {
	return m.running
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	err       error

	lastCategory string
}

func (m *mockDocumentService) List(_ context.Context, category string) ([]domain.Document, error) {
	m.lastCategory = category
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return "", m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return nil, m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}
