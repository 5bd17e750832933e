package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// AnswerService answers questions over the indexed library.
type AnswerService interface {
	// Ask retrieves relevant chunks, assembles a prompt, and generates
	// an answer citing its sources. An empty index or a question with
	// no relevant context yields an answer saying so, with no sources.
	Ask(ctx context.Context, question string, opts domain.QueryOptions) (*domain.Answer, error)
}
