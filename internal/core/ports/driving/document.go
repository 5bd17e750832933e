package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// DocumentService exposes the indexed documents.
type DocumentService interface {
	// List returns indexed documents, optionally filtered to one
	// category. Empty category means all.
	List(ctx context.Context, category string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the full extracted text of a document.
	GetContent(ctx context.Context, documentID string) (string, error)

	// GetDetails returns metadata for display.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Open opens the source file in the default application.
	Open(ctx context.Context, documentID string) error
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// Title is the document title.
	Title string

	// Category is the library category.
	Category string

	// RelPath is the path relative to the library root.
	RelPath string

	// Pages is the page count.
	Pages int

	// Scanned is true when OCR was needed for at least one page.
	Scanned bool

	// ChunkCount is the number of chunks.
	ChunkCount int

	// SizeBytes is the file size on disk.
	SizeBytes int64

	// ModTime is the file's modification time at index time.
	ModTime time.Time

	// IndexedAt is when the document entered the current generation.
	IndexedAt time.Time
}
