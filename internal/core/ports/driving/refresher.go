package driving

import "context"

// Refresher runs automatic full rebuilds: on a timer, on library file
// changes, or both, per the configured refresh policy.
type Refresher interface {
	// Start begins watching and scheduling rebuilds.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops pending triggers.
	Stop() error
}
