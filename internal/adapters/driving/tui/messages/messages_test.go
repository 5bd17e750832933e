package messages

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	testCases := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewChat, "chat"},
		{ViewDocuments, "documents"},
		{ViewDocContent, "doc_content"},
		{ViewDocDetails, "doc_details"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.view.String())
		})
	}
}

// TestViewChanged tests the ViewChanged message type
func TestViewChanged(t *testing.T) {
	t.Run("to chat view", func(t *testing.T) {
		msg := ViewChanged{View: ViewChat}
		assert.Equal(t, ViewChat, msg.View)
	})

	t.Run("to menu view", func(t *testing.T) {
		msg := ViewChanged{View: ViewMenu}
		assert.Equal(t, ViewMenu, msg.View)
	})
}

// TestErrorOccurred tests the ErrorOccurred message type
func TestErrorOccurred(t *testing.T) {
	err := errors.New("something broke")
	msg := ErrorOccurred{Err: err}

	assert.Error(t, msg.Err)
	assert.Equal(t, "something broke", msg.Err.Error())
}

// TestConversationStarted tests the ConversationStarted message type
func TestConversationStarted(t *testing.T) {
	t.Run("successful start", func(t *testing.T) {
		msg := ConversationStarted{ConversationID: "conv-123"}

		assert.Equal(t, "conv-123", msg.ConversationID)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		err := errors.New("store unavailable")
		msg := ConversationStarted{Err: err}

		assert.Equal(t, "", msg.ConversationID)
		assert.Error(t, msg.Err)
	})
}

// TestAnswerReceived tests the AnswerReceived message type
func TestAnswerReceived_WithAnswer(t *testing.T) {
	answer := &domain.Answer{
		Text: "The retention period is 90 days.",
		Sources: []domain.SourceRef{
			{DocumentID: "doc-1", Title: "Retention Policy", Score: 0.91},
		},
		Model:     "gpt-4o-mini",
		CreatedAt: time.Now(),
	}
	msg := AnswerReceived{ConversationID: "conv-1", Answer: answer, Err: nil}

	assert.Equal(t, "conv-1", msg.ConversationID)
	require.NotNil(t, msg.Answer)
	assert.Equal(t, "The retention period is 90 days.", msg.Answer.Text)
	assert.Len(t, msg.Answer.Sources, 1)
	assert.NoError(t, msg.Err)
}

func TestAnswerReceived_WithError(t *testing.T) {
	err := errors.New("generation failed")
	msg := AnswerReceived{ConversationID: "conv-1", Answer: nil, Err: err}

	assert.Nil(t, msg.Answer)
	assert.Error(t, msg.Err)
	assert.Equal(t, "generation failed", msg.Err.Error())
}

// TestStatusLoaded tests the StatusLoaded message type
func TestStatusLoaded(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		status := &domain.IndexStatus{
			DocumentCount: 12,
			ChunkCount:    340,
			Categories:    map[string]int{"manuals": 7, "papers": 5},
		}
		msg := StatusLoaded{Status: status}

		require.NotNil(t, msg.Status)
		assert.Equal(t, 12, msg.Status.DocumentCount)
		assert.Len(t, msg.Status.Categories, 2)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := StatusLoaded{Err: domain.ErrIndexEmpty}

		assert.Nil(t, msg.Status)
		assert.ErrorIs(t, msg.Err, domain.ErrIndexEmpty)
	})
}

// TestDocumentsLoaded tests the DocumentsLoaded message type
func TestDocumentsLoaded(t *testing.T) {
	t.Run("with documents", func(t *testing.T) {
		docs := []domain.Document{
			{ID: "doc-1", Title: "Doc 1"},
			{ID: "doc-2", Title: "Doc 2"},
		}
		msg := DocumentsLoaded{Category: "manuals", Documents: docs}

		assert.Equal(t, "manuals", msg.Category)
		assert.Len(t, msg.Documents, 2)
		assert.NoError(t, msg.Err)
	})

	t.Run("all categories", func(t *testing.T) {
		msg := DocumentsLoaded{Category: "", Documents: []domain.Document{}}

		assert.Equal(t, "", msg.Category)
		assert.Empty(t, msg.Documents)
	})

	t.Run("with error", func(t *testing.T) {
		err := errors.New("listing failed")
		msg := DocumentsLoaded{Err: err}

		assert.Nil(t, msg.Documents)
		assert.Error(t, msg.Err)
	})
}

// TestDocumentSelected tests the DocumentSelected message type
func TestDocumentSelected(t *testing.T) {
	doc := domain.Document{ID: "doc-1", Title: "Selected Doc", RelPath: "manuals/doc.pdf"}
	msg := DocumentSelected{Document: doc}

	assert.Equal(t, "doc-1", msg.Document.ID)
	assert.Equal(t, "Selected Doc", msg.Document.Title)
}

// TestDocumentContentLoaded tests the DocumentContentLoaded message type
func TestDocumentContentLoaded(t *testing.T) {
	t.Run("with content", func(t *testing.T) {
		msg := DocumentContentLoaded{
			DocumentID: "doc-1",
			Content:    "Extracted text content",
		}

		assert.Equal(t, "doc-1", msg.DocumentID)
		assert.Equal(t, "Extracted text content", msg.Content)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		err := errors.New("content not found")
		msg := DocumentContentLoaded{DocumentID: "doc-2", Err: err}

		assert.Equal(t, "doc-2", msg.DocumentID)
		assert.Equal(t, "", msg.Content)
		assert.Error(t, msg.Err)
	})
}

// TestDocumentDetailsLoaded tests the DocumentDetailsLoaded message type
func TestDocumentDetailsLoaded(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		msg := DocumentDetailsLoaded{
			DocumentID: "doc-1",
			Details:    struct{ Title string }{Title: "Doc 1"},
		}

		assert.Equal(t, "doc-1", msg.DocumentID)
		assert.NotNil(t, msg.Details)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		err := errors.New("details lookup failed")
		msg := DocumentDetailsLoaded{DocumentID: "doc-fail", Err: err}

		assert.Equal(t, "doc-fail", msg.DocumentID)
		assert.Nil(t, msg.Details)
		assert.Error(t, msg.Err)
	})
}
