package driven

import "context"

// VectorIndex provides persistent nearest-neighbour search over chunk
// embeddings. The index holds exactly one generation at a time:
// Rebuild discards everything and starts the next generation empty.
type VectorIndex interface {
	// Rebuild drops the current generation and starts a new, empty one
	// with the given ID and vector dimension.
	Rebuild(ctx context.Context, generation string, dimensions int) error

	// Add inserts entries for the current generation. Vector dimensions
	// must match the generation; mismatches return
	// domain.ErrDimensionMismatch.
	Add(ctx context.Context, entries []VectorEntry) error

	// Search finds the k nearest neighbours to the query vector.
	// category filters to one library category; empty means all.
	// k is clamped to the number of stored entries.
	Search(ctx context.Context, query []float32, k int, category string) ([]VectorHit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Generation returns the ID of the current generation, or "" when
	// no generation has been built.
	Generation(ctx context.Context) (string, error)

	// Close releases resources.
	Close() error
}

// VectorEntry is one chunk's embedding plus the metadata needed to
// filter and attribute hits without a store round-trip.
type VectorEntry struct {
	// ChunkID identifies the chunk.
	ChunkID string

	// DocumentID identifies the parent document.
	DocumentID string

	// Category is the document's library category.
	Category string

	// Page is the 1-based page the chunk starts on.
	Page int

	// Content is the chunk text.
	Content string

	// Embedding is the chunk's vector.
	Embedding []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// DocumentID is the matched chunk's parent document.
	DocumentID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64

	// Embedding is the stored vector, used for diversity selection.
	Embedding []float32
}
