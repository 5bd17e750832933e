package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure IndexStateStore implements the interface.
var _ driven.IndexStateStore = (*IndexStateStore)(nil)

// IndexStateStore is an in-memory implementation of driven.IndexStateStore.
type IndexStateStore struct {
	mu      sync.RWMutex
	status  *domain.IndexStatus
	refresh domain.RefreshState
}

// NewIndexStateStore creates a new in-memory index state store.
func NewIndexStateStore() *IndexStateStore {
	return &IndexStateStore{}
}

// SaveStatus stores the current generation's status.
func (s *IndexStateStore) SaveStatus(_ context.Context, status domain.IndexStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = &status
	return nil
}

// GetStatus retrieves the current generation's status.
func (s *IndexStateStore) GetStatus(_ context.Context) (*domain.IndexStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil, domain.ErrIndexEmpty
	}
	status := *s.status
	return &status, nil
}

// SaveRefreshState stores the automatic rebuild state.
func (s *IndexStateStore) SaveRefreshState(_ context.Context, state domain.RefreshState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = state
	return nil
}

// GetRefreshState retrieves the automatic rebuild state.
func (s *IndexStateStore) GetRefreshState(_ context.Context) (*domain.RefreshState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.refresh
	return &state, nil
}
