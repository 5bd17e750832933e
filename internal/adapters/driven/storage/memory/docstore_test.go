package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.chunks)
}

func TestDocumentStore_ReplaceAll_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	now := time.Now()
	doc := domain.Document{
		ID:          "doc-1",
		Category:    "guides",
		Title:       "Test Document",
		RelPath:     "guides/test.md",
		AbsPath:     "/library/guides/test.md",
		Content:     "some content",
		Pages:       1,
		ContentHash: "hash",
		ModTime:     now,
		IndexedAt:   now,
	}
	chunk := domain.Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Seq:        0,
		Page:       1,
		Content:    "some content",
	}

	err := store.ReplaceAll(ctx, []domain.Document{doc}, []domain.Chunk{chunk})
	require.NoError(t, err)

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", saved.ID)
	assert.Equal(t, "guides", saved.Category)
	assert.Equal(t, "guides/test.md", saved.RelPath)
	assert.Equal(t, "Test Document", saved.Title)
}

func TestDocumentStore_ReplaceAll_SwapsGeneration(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	first := domain.Document{ID: "doc-1", Category: "guides", RelPath: "guides/a.md"}
	firstChunk := domain.Chunk{ID: "chunk-1", DocumentID: "doc-1"}
	err := store.ReplaceAll(ctx, []domain.Document{first}, []domain.Chunk{firstChunk})
	require.NoError(t, err)

	second := domain.Document{ID: "doc-2", Category: "manuals", RelPath: "manuals/b.md"}
	secondChunk := domain.Chunk{ID: "chunk-2", DocumentID: "doc-2"}
	err = store.ReplaceAll(ctx, []domain.Document{second}, []domain.Chunk{secondChunk})
	require.NoError(t, err)

	// The old generation is gone
	_, err = store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetChunk(ctx, "chunk-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The new one is present
	saved, err := store.GetDocument(ctx, "doc-2")
	require.NoError(t, err)
	assert.Equal(t, "manuals/b.md", saved.RelPath)
}

func TestDocumentStore_ReplaceAll_Empty(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := domain.Document{ID: "doc-1", Category: "guides", RelPath: "guides/a.md"}
	err := store.ReplaceAll(ctx, []domain.Document{doc}, nil)
	require.NoError(t, err)

	err = store.ReplaceAll(ctx, nil, nil)
	require.NoError(t, err)

	docs, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc, err := store.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_GetChunk_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunk := domain.Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Seq:        3,
		Page:       2,
		Offset:     800,
		Content:    "chunk content",
		Embedding:  []float32{0.1, 0.2, 0.3},
	}
	err := store.ReplaceAll(ctx, nil, []domain.Chunk{chunk})
	require.NoError(t, err)

	saved, err := store.GetChunk(ctx, "chunk-1")
	require.NoError(t, err)
	assert.Equal(t, chunk.Seq, saved.Seq)
	assert.Equal(t, chunk.Page, saved.Page)
	assert.Equal(t, chunk.Offset, saved.Offset)
	assert.Equal(t, chunk.Embedding, saved.Embedding)
}

func TestDocumentStore_GetChunk_NotFound(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunk, err := store.GetChunk(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, chunk)
}

func TestDocumentStore_GetChunks_OrderedBySeq(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "chunk-c", DocumentID: "doc-1", Seq: 2},
		{ID: "chunk-a", DocumentID: "doc-1", Seq: 0},
		{ID: "chunk-b", DocumentID: "doc-1", Seq: 1},
		{ID: "chunk-x", DocumentID: "doc-2", Seq: 0},
	}
	err := store.ReplaceAll(ctx, nil, chunks)
	require.NoError(t, err)

	result, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "chunk-a", result[0].ID)
	assert.Equal(t, "chunk-b", result[1].ID)
	assert.Equal(t, "chunk-c", result[2].ID)
}

func TestDocumentStore_GetChunks_Empty(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunks, err := store.GetChunks(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestDocumentStore_ListDocuments_OrderedByRelPath(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	docs := []domain.Document{
		{ID: "doc-1", Category: "manuals", RelPath: "manuals/router.pdf"},
		{ID: "doc-2", Category: "guides", RelPath: "guides/zebra.md"},
		{ID: "doc-3", Category: "guides", RelPath: "guides/alpha.md"},
	}
	err := store.ReplaceAll(ctx, docs, nil)
	require.NoError(t, err)

	all, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "guides/alpha.md", all[0].RelPath)
	assert.Equal(t, "guides/zebra.md", all[1].RelPath)
	assert.Equal(t, "manuals/router.pdf", all[2].RelPath)
}

func TestDocumentStore_ListDocuments_FiltersByCategory(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	docs := []domain.Document{
		{ID: "doc-1", Category: "guides", RelPath: "guides/a.md"},
		{ID: "doc-2", Category: "manuals", RelPath: "manuals/b.md"},
		{ID: "doc-3", Category: "guides", RelPath: "guides/c.md"},
	}
	err := store.ReplaceAll(ctx, docs, nil)
	require.NoError(t, err)

	guides, err := store.ListDocuments(ctx, "guides")
	require.NoError(t, err)
	require.Len(t, guides, 2)
	for _, doc := range guides {
		assert.Equal(t, "guides", doc.Category)
	}

	none, err := store.ListDocuments(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDocumentStore_CountByCategory(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	docs := []domain.Document{
		{ID: "doc-1", Category: "guides", RelPath: "guides/a.md"},
		{ID: "doc-2", Category: "guides", RelPath: "guides/b.md"},
		{ID: "doc-3", Category: "manuals", RelPath: "manuals/c.md"},
	}
	err := store.ReplaceAll(ctx, docs, nil)
	require.NoError(t, err)

	counts, err := store.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"guides": 2, "manuals": 1}, counts)
}

func TestDocumentStore_DataIsolation_Document(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := domain.Document{ID: "doc-1", Category: "guides", Title: "Original", RelPath: "guides/a.md"}
	err := store.ReplaceAll(ctx, []domain.Document{doc}, nil)
	require.NoError(t, err)

	// Mutating the retrieved copy must not affect the store
	first, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	first.Title = "Mutated"

	second, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", second.Title)
}

func TestDocumentStore_ChunkWithLargeEmbedding(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	embedding := make([]float32, 1536)
	for i := range embedding {
		embedding[i] = float32(i) * 0.001
	}

	chunk := domain.Chunk{ID: "chunk-1", DocumentID: "doc-1", Embedding: embedding}
	err := store.ReplaceAll(ctx, nil, []domain.Chunk{chunk})
	require.NoError(t, err)

	saved, err := store.GetChunk(ctx, "chunk-1")
	require.NoError(t, err)
	assert.Len(t, saved.Embedding, 1536)
	assert.Equal(t, embedding, saved.Embedding)
}

func TestDocumentStore_Concurrency_ReplaceWhileReading(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	seed := []domain.Document{{ID: "doc-0", Category: "guides", RelPath: "guides/0.md"}}
	require.NoError(t, store.ReplaceAll(ctx, seed, nil))

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			docs := []domain.Document{{
				ID:       fmt.Sprintf("doc-%d", id),
				Category: "guides",
				RelPath:  fmt.Sprintf("guides/%d.md", id),
			}}
			_ = store.ReplaceAll(ctx, docs, nil)
		}(i)
		go func(id int) {
			defer wg.Done()
			_, _ = store.GetDocument(ctx, fmt.Sprintf("doc-%d", id))
			_, _ = store.ListDocuments(ctx, "guides")
			_, _ = store.CountByCategory(ctx)
		}(i)
	}
	wg.Wait()

	// Exactly one generation survives
	docs, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentStore_InterfaceCompliance(t *testing.T) {
	var _ driven.DocumentStore = NewDocumentStore()
	assert.NoError(t, NewDocumentStore().Close())
}
