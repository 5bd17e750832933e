package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// AnswerActionService provides actions on answers and their citations.
// This is used by TUI, CLI, and MCP adapters.
type AnswerActionService interface {
	// CopyAnswer copies the answer text to the system clipboard.
	CopyAnswer(ctx context.Context, answer *domain.Answer) error

	// OpenSource opens the cited document in the default application.
	OpenSource(ctx context.Context, ref domain.SourceRef) error
}
