package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// IndexService builds and inspects the document index.
type IndexService interface {
	// Reindex runs the full pipeline: discover, extract, chunk, embed,
	// store, and swap in the new generation. The previous generation
	// stays live until the swap, and re-indexing is single-flight:
	// a concurrent call returns domain.ErrReindexRunning.
	Reindex(ctx context.Context) (*domain.IndexReport, error)

	// Status returns the current generation's status.
	// Returns domain.ErrIndexEmpty when nothing has been indexed yet.
	Status(ctx context.Context) (*domain.IndexStatus, error)

	// Running reports whether a rebuild is currently in progress.
	Running() bool
}
