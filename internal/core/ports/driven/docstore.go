package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// ReplaceAll swaps in a complete new generation atomically:
	// all previous documents and chunks are removed and the given
	// ones stored in a single transaction.
	ReplaceAll(ctx context.Context, docs []domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document, ordered by Seq.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns documents, optionally filtered to one
	// category. Empty category means all. Ordered by RelPath.
	ListDocuments(ctx context.Context, category string) ([]domain.Document, error)

	// CountByCategory returns indexed document counts per category.
	CountByCategory(ctx context.Context) (map[string]int, error)

	// Close releases the underlying database handle.
	Close() error
}
