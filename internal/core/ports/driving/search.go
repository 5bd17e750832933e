package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// SearchService retrieves the chunks most relevant to a query.
// This is raw retrieval: no LLM involved, just embedding similarity
// with diversity selection.
type SearchService interface {
	// Search embeds the query and returns the top chunks with their
	// parent documents and similarity scores. History in opts is ignored.
	Search(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.RetrievedChunk, error)
}
