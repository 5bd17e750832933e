// Package chromem provides a vector index adapter backed by chromem-go,
// an embedded vector database that persists to plain files.
package chromem

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Config holds configuration for the chromem vector index.
type Config struct {
	// Path is the directory the index persists to (required).
	Path string
}

// Index stores chunk embeddings in a single chromem collection. The
// collection is named after the index generation, so the current
// generation survives restarts without extra bookkeeping.
type Index struct {
	mu sync.RWMutex

	db         *chromemgo.DB
	collection *chromemgo.Collection
	generation string
	dimensions int // 0 when unknown (reopened index before any Rebuild)
}

// New opens or creates a persistent vector index at cfg.Path.
func New(cfg Config) (*Index, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("chromem: index path is required")
	}

	db, err := chromemgo.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("chromem: open %s: %w", cfg.Path, err)
	}

	idx := &Index{db: db}
	idx.adoptExisting()
	return idx, nil
}

// NewInMemory creates a volatile index. Nothing is written to disk,
// which makes it suitable for tests and throwaway sessions.
func NewInMemory() *Index {
	return &Index{db: chromemgo.NewDB()}
}

// adoptExisting picks up the generation persisted by a previous run.
// More than one collection means a rebuild was interrupted partway,
// in which case no generation is adopted and the leftovers are swept
// by the next Rebuild.
func (x *Index) adoptExisting() {
	collections := x.db.ListCollections()
	if len(collections) > 1 {
		logger.Warn("vector index holds %d collections, ignoring all until the next rebuild", len(collections))
		return
	}
	for name, coll := range collections {
		x.generation = name
		x.collection = coll
	}
}

// Rebuild drops the current generation and starts a new, empty one.
func (x *Index) Rebuild(ctx context.Context, generation string, dimensions int) error {
	if generation == "" {
		return fmt.Errorf("chromem: %w: generation must not be empty", domain.ErrInvalidInput)
	}
	if dimensions <= 0 {
		return fmt.Errorf("chromem: %w: dimensions must be positive", domain.ErrInvalidInput)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for name := range x.db.ListCollections() {
		if err := x.db.DeleteCollection(name); err != nil {
			return fmt.Errorf("chromem: drop generation %s: %w", name, err)
		}
	}

	// chromem always uses cosine similarity; the metadata documents the
	// intent the way Chroma proper expects it.
	coll, err := x.db.CreateCollection(generation, map[string]string{"hnsw:space": "cosine"}, nil)
	if err != nil {
		return fmt.Errorf("chromem: create generation %s: %w", generation, err)
	}

	x.collection = coll
	x.generation = generation
	x.dimensions = dimensions

	logger.Debug("vector index rebuilt: generation=%s dimensions=%d", generation, dimensions)
	return nil
}

// Add inserts entries into the current generation.
func (x *Index) Add(ctx context.Context, entries []driven.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.collection == nil {
		return fmt.Errorf("chromem: %w", domain.ErrIndexEmpty)
	}

	// A reopened index does not know its dimensions until the first
	// write; adopt them from the batch.
	if x.dimensions == 0 {
		x.dimensions = len(entries[0].Embedding)
	}

	ids := make([]string, len(entries))
	embeddings := make([][]float32, len(entries))
	metadatas := make([]map[string]string, len(entries))
	contents := make([]string, len(entries))

	for i, entry := range entries {
		if len(entry.Embedding) != x.dimensions {
			return fmt.Errorf("chromem: chunk %s has %d dimensions, index has %d: %w",
				entry.ChunkID, len(entry.Embedding), x.dimensions, domain.ErrDimensionMismatch)
		}
		ids[i] = entry.ChunkID
		embeddings[i] = entry.Embedding
		metadatas[i] = map[string]string{
			"document_id": entry.DocumentID,
			"category":    entry.Category,
			"page":        strconv.Itoa(entry.Page),
		}
		contents[i] = entry.Content
	}

	if err := x.collection.Add(ctx, ids, embeddings, metadatas, contents); err != nil {
		return fmt.Errorf("chromem: add %d entries: %w", len(entries), err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector.
func (x *Index) Search(ctx context.Context, query []float32, k int, category string) ([]driven.VectorHit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.collection == nil {
		return nil, fmt.Errorf("chromem: %w", domain.ErrIndexEmpty)
	}
	if x.dimensions > 0 && len(query) != x.dimensions {
		return nil, fmt.Errorf("chromem: query has %d dimensions, index has %d: %w",
			len(query), x.dimensions, domain.ErrDimensionMismatch)
	}

	// chromem rejects k larger than the collection.
	count := x.collection.Count()
	if k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	var where map[string]string
	if category != "" {
		where = map[string]string{"category": category}
	}

	results, err := x.collection.QueryEmbedding(ctx, query, k, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: query: %w", err)
	}

	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{
			ChunkID:    r.ID,
			DocumentID: r.Metadata["document_id"],
			Similarity: float64(r.Similarity),
			Embedding:  r.Embedding,
		}
	}
	return hits, nil
}

// Count returns the number of stored entries.
func (x *Index) Count(ctx context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.collection == nil {
		return 0, nil
	}
	return x.collection.Count(), nil
}

// Generation returns the ID of the current generation, or "" when no
// generation has been built.
func (x *Index) Generation(ctx context.Context) (string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.generation, nil
}

// Close releases resources. chromem flushes on every write, so there
// is nothing to sync here.
func (x *Index) Close() error {
	return nil
}
