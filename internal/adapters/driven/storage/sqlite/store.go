package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docent/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docent/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docent", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// IndexStateStore returns an IndexStateStore interface backed by this store.
func (s *Store) IndexStateStore() driven.IndexStateStore {
	return &indexStateStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// ReplaceAll swaps in a complete new generation of documents and chunks.
// Everything happens in one transaction: readers see either the old
// generation or the new one, never a mix.
func (s *documentStore) ReplaceAll(ctx context.Context, docs []domain.Document, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Chunks reference documents, so they go first.
	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, category, title, rel_path, abs_path, content, pages, scanned, content_hash, size_bytes, mod_time, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing document statement: %w", err)
	}
	defer docStmt.Close()

	for _, doc := range docs {
		if _, err := docStmt.ExecContext(ctx, doc.ID, doc.Category, doc.Title,
			doc.RelPath, doc.AbsPath, doc.Content, doc.Pages, boolToInt(doc.Scanned),
			doc.ContentHash, doc.SizeBytes, doc.ModTime, doc.IndexedAt); err != nil {
			return fmt.Errorf("saving document %s: %w", doc.RelPath, err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, seq, page, start_offset, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk statement: %w", err)
	}
	defer chunkStmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := chunkStmt.ExecContext(ctx, chunk.ID, chunk.DocumentID,
			chunk.Seq, chunk.Page, chunk.Offset, chunk.Content, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, category, title, rel_path, abs_path, content, pages, scanned, content_hash, size_bytes, mod_time, indexed_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetChunk retrieves a specific chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, seq, page, start_offset, content, embedding
		FROM chunks WHERE id = ?
	`, id)

	return scanChunkRow(row)
}

// GetChunks retrieves all chunks for a document, ordered by sequence.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, seq, page, start_offset, content, embedding
		FROM chunks WHERE document_id = ?
		ORDER BY seq
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ListDocuments returns documents ordered by relative path.
// An empty category returns all documents.
func (s *documentStore) ListDocuments(ctx context.Context, category string) ([]domain.Document, error) {
	var rows *sql.Rows
	var err error
	if category != "" {
		rows, err = s.store.db.QueryContext(ctx, `
			SELECT id, category, title, rel_path, abs_path, content, pages, scanned, content_hash, size_bytes, mod_time, indexed_at
			FROM documents WHERE category = ?
			ORDER BY rel_path
		`, category)
	} else {
		rows, err = s.store.db.QueryContext(ctx, `
			SELECT id, category, title, rel_path, abs_path, content, pages, scanned, content_hash, size_bytes, mod_time, indexed_at
			FROM documents
			ORDER BY rel_path
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// CountByCategory returns indexed document counts per category.
func (s *documentStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM documents
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[category] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}

	return counts, nil
}

// Close closes the underlying database connection.
func (s *documentStore) Close() error {
	return s.store.Close()
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var scanned int

	if err := row.Scan(&doc.ID, &doc.Category, &doc.Title, &doc.RelPath, &doc.AbsPath,
		&doc.Content, &doc.Pages, &scanned, &doc.ContentHash, &doc.SizeBytes,
		&doc.ModTime, &doc.IndexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Scanned = scanned == 1

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var scanned int

	if err := rows.Scan(&doc.ID, &doc.Category, &doc.Title, &doc.RelPath, &doc.AbsPath,
		&doc.Content, &doc.Pages, &scanned, &doc.ContentHash, &doc.SizeBytes,
		&doc.ModTime, &doc.IndexedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Scanned = scanned == 1

	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Seq,
		&chunk.Page, &chunk.Offset, &chunk.Content, &embeddingBlob); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	return &chunk, nil
}

// scanChunkRow scans a chunk from *sql.Row.
func scanChunkRow(row *sql.Row) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Seq,
		&chunk.Page, &chunk.Offset, &chunk.Content, &embeddingBlob); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	return &chunk, nil
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
