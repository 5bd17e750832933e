package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// ChatService runs multi-turn conversations over the indexed library.
// Conversations are held in memory and die with the process.
type ChatService interface {
	// StartConversation creates a new empty conversation.
	StartConversation(ctx context.Context) (*domain.Conversation, error)

	// Ask answers a question within a conversation: prior turns are
	// rendered into the prompt and the new exchange is appended.
	// Returns domain.ErrConversationNotFound for unknown IDs.
	Ask(ctx context.Context, conversationID, question string, opts domain.QueryOptions) (*domain.Answer, error)

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
}
