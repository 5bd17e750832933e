package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// IndexStateStore persists index generation metadata and the outcome
// of automatic rebuilds.
type IndexStateStore interface {
	// SaveStatus stores the status of the current generation,
	// replacing any previous one.
	SaveStatus(ctx context.Context, status domain.IndexStatus) error

	// GetStatus retrieves the current generation's status.
	// Returns domain.ErrIndexEmpty when no generation has been built.
	GetStatus(ctx context.Context) (*domain.IndexStatus, error)

	// SaveRefreshState stores the automatic rebuild state.
	SaveRefreshState(ctx context.Context, state domain.RefreshState) error

	// GetRefreshState retrieves the automatic rebuild state.
	// Returns a zero state when no automatic rebuild has run yet.
	GetRefreshState(ctx context.Context) (*domain.RefreshState, error)
}
