package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService retrieves the chunks most relevant to a query. It is
// the retrieval half of question answering, exposed on its own so the
// raw index results can be inspected without involving the LLM.
type SearchService struct {
	docStore    driven.DocumentStore
	vectorIndex driven.VectorIndex
	embedder    driven.EmbeddingService

	mmrLambda     float64
	defaultTopK   int
	defaultFetchK int
}

// NewSearchService creates a new search service.
func NewSearchService(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	embedder driven.EmbeddingService,
) *SearchService {
	return &SearchService{
		docStore:      docStore,
		vectorIndex:   vectorIndex,
		embedder:      embedder,
		mmrLambda:     domain.DefaultMMRLambda,
		defaultTopK:   domain.DefaultTopK,
		defaultFetchK: domain.DefaultFetchK,
	}
}

// SetMMRLambda overrides the relevance/diversity trade-off used when
// selecting the final result set. Values outside (0, 1] are ignored.
func (s *SearchService) SetMMRLambda(lambda float64) {
	if lambda > 0 && lambda <= 1 {
		s.mmrLambda = lambda
	}
}

// SetDefaultTopK overrides how many chunks a request gets when it does
// not say. Non-positive values are ignored.
func (s *SearchService) SetDefaultTopK(k int) {
	if k > 0 {
		s.defaultTopK = k
	}
}

// SetDefaultFetchK overrides how many candidates are fetched before
// diversity selection when the request does not say. Non-positive
// values are ignored.
func (s *SearchService) SetDefaultFetchK(k int) {
	if k > 0 {
		s.defaultFetchK = k
	}
}

// Search embeds the query, fetches the nearest candidates from the
// vector index and selects the final set by maximal marginal
// relevance, so near-duplicate chunks don't crowd out the rest of the
// context.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.QueryOptions,
) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievedChunk{}, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	fetchK := opts.FetchK
	if fetchK <= 0 {
		fetchK = s.defaultFetchK
	}
	if fetchK < topK {
		fetchK = topK
	}
	logger.Debug("TopK: %d, FetchK: %d, Category: %q", topK, fetchK, opts.Category)

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(queryVec))

	hits, err := s.vectorIndex.Search(ctx, queryVec, fetchK, opts.Category)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d candidates", len(hits))
	if len(hits) == 0 {
		return []domain.RetrievedChunk{}, nil
	}

	selected := selectMMR(hits, topK, s.mmrLambda)
	logger.Debug("Selected %d of %d candidates", len(selected), len(hits))

	results, err := s.hydrate(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}
	logger.Debug("Hydrated results: %d chunks", len(results))

	return results, nil
}

// hydrate loads chunk text and document metadata for the selected
// hits. Hits whose chunk or document is gone from the store are
// dropped; the vector index and the document store are rebuilt
// together, so a gap between them only lasts for the duration of a
// rebuild.
func (s *SearchService) hydrate(ctx context.Context, hits []driven.VectorHit) ([]domain.RetrievedChunk, error) {
	results := make([]domain.RetrievedChunk, 0, len(hits))

	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Dropping stale hit: chunk %s is no longer stored", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Dropping stale hit: document %s is no longer stored", chunk.DocumentID)
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
		}

		results = append(results, domain.RetrievedChunk{
			Document: *doc,
			Chunk:    *chunk,
			Score:    hit.Similarity,
		})
	}

	return results, nil
}

// selectMMR picks k hits by maximal marginal relevance: each round
// takes the candidate with the best trade-off between similarity to
// the query and similarity to what is already selected. lambda 1.0 is
// pure relevance, 0.0 pure diversity.
func selectMMR(hits []driven.VectorHit, k int, lambda float64) []driven.VectorHit {
	if k >= len(hits) {
		return hits
	}

	selected := make([]driven.VectorHit, 0, k)
	remaining := make([]driven.VectorHit, len(hits))
	copy(remaining, hits)

	for len(selected) < k && len(remaining) > 0 {
		best := 0
		bestScore := math.Inf(-1)
		for i, cand := range remaining {
			score := lambda * cand.Similarity
			if len(selected) > 0 {
				maxSim := math.Inf(-1)
				for _, sel := range selected {
					if sim := cosineSimilarity(cand.Embedding, sel.Embedding); sim > maxSim {
						maxSim = sim
					}
				}
				score -= (1 - lambda) * maxSim
			}
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		selected = append(selected, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return selected
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
