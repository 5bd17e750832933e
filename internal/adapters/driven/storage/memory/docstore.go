package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string]domain.Chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]domain.Chunk),
	}
}

// ReplaceAll swaps in a complete new generation of documents and chunks.
func (s *DocumentStore) ReplaceAll(_ context.Context, docs []domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make(map[string]domain.Document, len(docs))
	for _, doc := range docs {
		s.documents[doc.ID] = doc
	}

	s.chunks = make(map[string]domain.Chunk, len(chunks))
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}

	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

// GetChunks retrieves all chunks for a document, ordered by sequence.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			result = append(result, chunk)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

// ListDocuments returns documents ordered by relative path.
// An empty category returns all documents.
func (s *DocumentStore) ListDocuments(_ context.Context, category string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for _, doc := range s.documents {
		if category == "" || doc.Category == category {
			result = append(result, doc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RelPath < result[j].RelPath
	})
	return result, nil
}

// CountByCategory returns indexed document counts per category.
func (s *DocumentStore) CountByCategory(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, doc := range s.documents {
		counts[doc.Category]++
	}
	return counts, nil
}

// Close releases nothing for the in-memory store.
func (s *DocumentStore) Close() error {
	return nil
}
