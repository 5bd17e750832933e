package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// indexStateStore implements driven.IndexStateStore.
type indexStateStore struct {
	store *Store
}

var _ driven.IndexStateStore = (*indexStateStore)(nil)

// SaveStatus stores the status of the current generation, replacing any
// previous one. Both tables are single-row; the row ID is always 1.
func (s *indexStateStore) SaveStatus(ctx context.Context, status domain.IndexStatus) error {
	categoriesJSON, err := json.Marshal(status.Categories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO index_state (id, generation, built_at, document_count, chunk_count, categories, embedding_model, embedding_dimensions)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			generation = excluded.generation,
			built_at = excluded.built_at,
			document_count = excluded.document_count,
			chunk_count = excluded.chunk_count,
			categories = excluded.categories,
			embedding_model = excluded.embedding_model,
			embedding_dimensions = excluded.embedding_dimensions
	`, status.Generation, status.BuiltAt, status.DocumentCount, status.ChunkCount,
		string(categoriesJSON), status.EmbeddingModel, status.EmbeddingDimensions)

	if err != nil {
		return fmt.Errorf("saving index status: %w", err)
	}
	return nil
}

// GetStatus retrieves the current generation's status.
// Returns domain.ErrIndexEmpty when no generation has been built yet.
func (s *indexStateStore) GetStatus(ctx context.Context) (*domain.IndexStatus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT generation, built_at, document_count, chunk_count, categories, embedding_model, embedding_dimensions
		FROM index_state WHERE id = 1
	`)

	var status domain.IndexStatus
	var categoriesJSON string
	if err := row.Scan(&status.Generation, &status.BuiltAt, &status.DocumentCount,
		&status.ChunkCount, &categoriesJSON, &status.EmbeddingModel,
		&status.EmbeddingDimensions); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrIndexEmpty
		}
		return nil, fmt.Errorf("scanning index status: %w", err)
	}

	if categoriesJSON != "" && categoriesJSON != jsonNull {
		if err := json.Unmarshal([]byte(categoriesJSON), &status.Categories); err != nil {
			return nil, fmt.Errorf("unmarshaling categories: %w", err)
		}
	}

	return &status, nil
}

// SaveRefreshState stores the automatic rebuild state.
func (s *indexStateStore) SaveRefreshState(ctx context.Context, state domain.RefreshState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO refresh_state (id, last_run, last_success, last_error)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_run = excluded.last_run,
			last_success = excluded.last_success,
			last_error = excluded.last_error
	`, formatNullableTime(state.LastRun), formatNullableTime(state.LastSuccess),
		nullString(state.LastError))

	if err != nil {
		return fmt.Errorf("saving refresh state: %w", err)
	}
	return nil
}

// GetRefreshState retrieves the automatic rebuild state.
// Returns a zero state when no automatic rebuild has run yet.
func (s *indexStateStore) GetRefreshState(ctx context.Context) (*domain.RefreshState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT last_run, last_success, last_error
		FROM refresh_state WHERE id = 1
	`)

	var state domain.RefreshState
	var lastRun, lastSuccess, lastError sql.NullString
	if err := row.Scan(&lastRun, &lastSuccess, &lastError); err != nil {
		if err == sql.ErrNoRows {
			return &domain.RefreshState{}, nil
		}
		return nil, fmt.Errorf("scanning refresh state: %w", err)
	}

	state.LastRun = parseNullableTime(lastRun)
	state.LastSuccess = parseNullableTime(lastSuccess)
	if lastError.Valid {
		state.LastError = lastError.String
	}

	return &state, nil
}

// ==================== Helper Functions ====================

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{} // Return zero time on parse error
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
