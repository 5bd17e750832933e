package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.Refresher = (*Refresher)(nil)

// watchDebounce is how long the refresher waits after the last library
// change before rebuilding. Copying a folder of documents fires a
// burst of events that must coalesce into a single rebuild.
var watchDebounce = 2 * time.Second

// Refresher keeps the index in step with the library in the
// background: a fixed-interval timer, a filesystem watch, or both,
// per the refresh policy. It is a pure core service with no external
// control API.
type Refresher struct {
	policy  domain.RefreshPolicy
	indexer driving.IndexService
	library driven.DocumentLibrary
	state   driven.IndexStateStore

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRefresher creates a refresher with the given policy.
func NewRefresher(
	policy domain.RefreshPolicy,
	indexer driving.IndexService,
	library driven.DocumentLibrary,
	state driven.IndexStateStore,
) *Refresher {
	return &Refresher{
		policy:  policy,
		indexer: indexer,
		library: library,
		state:   state,
	}
}

// Start begins the refresh loop. This method blocks until Stop is
// called or the context is cancelled. When the policy disables
// automatic rebuilds it returns immediately.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	if !r.policy.Enabled || (r.policy.Interval <= 0 && !r.policy.WatchLibrary) {
		r.mu.Unlock()
		return nil // Nothing to do
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	var events <-chan domain.LibraryEvent
	if r.policy.WatchLibrary {
		ch, err := r.library.Watch(ctx)
		if err != nil {
			// A missing library root must not kill the interval timer;
			// the watch just stays off until the next start.
			logger.Warn("refresher: library watch unavailable: %v", err)
		} else {
			events = ch
		}
	}

	return r.run(ctx, events)
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	// Wait for an in-flight rebuild to complete
	r.wg.Wait()

	return nil
}

// run is the main refresh loop.
func (r *Refresher) run(ctx context.Context, events <-chan domain.LibraryEvent) error {
	var tick <-chan time.Time
	if r.policy.Interval > 0 {
		ticker := time.NewTicker(r.policy.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	// The debounce timer starts stopped and only runs while a burst of
	// library events is being coalesced.
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-r.stopCh:
			return nil

		case <-tick:
			r.rebuild(ctx, "interval")

		case ev, ok := <-events:
			if !ok {
				// Watch closed with the context; keep the timer going.
				events = nil
				continue
			}
			logger.Debug("refresher: library change: %s", ev.Path)
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			r.rebuild(ctx, "library change")
		}
	}
}

// rebuild runs one re-index in the background and records the outcome.
// A rebuild already in flight is skipped, not an error: the whole
// library is re-read every run, so the next trigger picks up whatever
// this one would have.
func (r *Refresher) rebuild(ctx context.Context, reason string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		logger.Info("refresher: rebuilding index (%s)", reason)

		state := domain.RefreshState{LastRun: time.Now().UTC()}
		if prev, err := r.state.GetRefreshState(ctx); err == nil && prev != nil {
			state.LastSuccess = prev.LastSuccess
		}

		report, err := r.indexer.Reindex(ctx)
		switch {
		case errors.Is(err, domain.ErrReindexRunning):
			logger.Debug("refresher: rebuild already in flight, skipping")
			return
		case err != nil:
			state.LastError = err.Error()
			logger.Warn("refresher: rebuild failed: %v", err)
		default:
			state.LastSuccess = state.LastRun
			state.LastError = ""
			logger.Info("refresher: rebuild complete: %d documents, %d chunks in %s",
				report.DocumentCount, report.ChunkCount, report.Duration().Round(time.Millisecond))
		}

		if saveErr := r.state.SaveRefreshState(ctx, state); saveErr != nil {
			logger.Warn("refresher: failed to save refresh state: %v", saveErr)
		}
	}()
}
