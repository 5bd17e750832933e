package domain

import "time"

// Role identifies who produced a conversation turn.
type Role string

// Available roles.
const (
	// RoleUser is the person asking questions.
	RoleUser Role = "user"

	// RoleAssistant is the generated answer side.
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation.
type Turn struct {
	// Role is who produced the turn.
	Role Role

	// Content is the message text.
	Content string

	// Sources are the citations for assistant turns, nil for user turns.
	Sources []SourceRef

	// CreatedAt is when the turn was added.
	CreatedAt time.Time
}

// Conversation is an in-memory chat history. Conversations live only
// for the lifetime of the process; nothing is persisted.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string

	// Turns is the full history in chronological order.
	Turns []Turn

	// CreatedAt is when the conversation started.
	CreatedAt time.Time

	// UpdatedAt is when the last turn was added.
	UpdatedAt time.Time
}

// Append adds a turn and bumps UpdatedAt.
func (c *Conversation) Append(turn Turn) {
	c.Turns = append(c.Turns, turn)
	c.UpdatedAt = turn.CreatedAt
}

// Window returns the most recent n turns in chronological order.
// It returns all turns when n is zero or exceeds the history length.
func (c *Conversation) Window(n int) []Turn {
	if n <= 0 || n >= len(c.Turns) {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-n:]
}
