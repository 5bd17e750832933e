package domain

import "time"

// RefreshPolicy controls automatic full rebuilds of the index.
// There is no incremental indexing: every trigger runs the complete
// pipeline and replaces the generation.
type RefreshPolicy struct {
	// Enabled is the master switch for automatic rebuilds.
	Enabled bool

	// Interval triggers a periodic rebuild. Zero disables the timer.
	Interval time.Duration

	// WatchLibrary triggers a rebuild (debounced) when library files
	// change on disk.
	WatchLibrary bool
}

// DefaultRefreshPolicy returns the policy for a fresh install.
// Automatic rebuilds are off; users opt in via settings or
// `docent serve --watch`.
func DefaultRefreshPolicy() RefreshPolicy {
	return RefreshPolicy{
		Enabled:      false,
		Interval:     0,
		WatchLibrary: false,
	}
}

// RefreshState records the outcome of automatic rebuilds.
// It is persisted separately from the policy.
type RefreshState struct {
	// LastRun is when an automatic rebuild last started.
	LastRun time.Time

	// LastSuccess is when an automatic rebuild last completed.
	LastSuccess time.Time

	// LastError holds the last rebuild error message, if any.
	LastError string
}
