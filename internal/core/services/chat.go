package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService runs multi-turn conversations over the answer service.
// Conversations live in memory only; restarting the process forgets
// them all.
type ChatService struct {
	answers driving.AnswerService

	mu            sync.RWMutex
	conversations map[string]*domain.Conversation

	historyWindow int
}

// NewChatService creates a new chat service.
func NewChatService(answers driving.AnswerService) *ChatService {
	return &ChatService{
		answers:       answers,
		conversations: make(map[string]*domain.Conversation),
		historyWindow: domain.DefaultHistoryWindow,
	}
}

// SetHistoryWindow overrides how many recent turns go into the answer
// prompt. Non-positive values are ignored.
func (s *ChatService) SetHistoryWindow(n int) {
	if n > 0 {
		s.historyWindow = n
	}
}

// StartConversation creates a new empty conversation.
func (s *ChatService) StartConversation(_ context.Context) (*domain.Conversation, error) {
	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	logger.Debug("Started conversation %s", conv.ID)
	return copyConversation(conv), nil
}

// Ask answers a question within a conversation. The recent turns are
// passed to the answer service as history, and both the question and
// the answer are appended to the conversation afterwards. A failed
// generation leaves the history untouched so the question can be
// retried.
func (s *ChatService) Ask(
	ctx context.Context, conversationID, question string, opts domain.QueryOptions,
) (*domain.Answer, error) {
	s.mu.RLock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	opts.History = append([]domain.Turn(nil), conv.Window(s.historyWindow)...)
	s.mu.RUnlock()

	logger.Debug("Conversation %s: %d history turns in window", conversationID, len(opts.History))

	answer, err := s.answers.Ask(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The conversation may have been started fresh while the answer was
	// generating; re-check before appending.
	conv, ok = s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	conv.Append(domain.Turn{
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: answer.CreatedAt,
	})
	conv.Append(domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   answer.Text,
		Sources:   answer.Sources,
		CreatedAt: answer.CreatedAt,
	})

	return answer, nil
}

// GetConversation returns a copy of the conversation history.
func (s *ChatService) GetConversation(_ context.Context, conversationID string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	return copyConversation(conv), nil
}

// copyConversation clones a conversation so callers can't mutate the
// stored history behind the lock.
func copyConversation(conv *domain.Conversation) *domain.Conversation {
	clone := *conv
	clone.Turns = append([]domain.Turn(nil), conv.Turns...)
	return &clone
}
