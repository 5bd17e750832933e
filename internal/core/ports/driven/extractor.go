package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// Extractor pulls text out of one family of file types.
// Each extractor handles specific extensions (e.g., ".pdf", ".md").
type Extractor interface {
	// Extensions returns the lower-case file extensions this
	// extractor handles, including the leading dot.
	Extensions() []string

	// Extract reads the file and returns its per-page text.
	// Extractors decide internally when to fall back to OCR;
	// direct extraction always wins when it yields text.
	Extract(ctx context.Context, file domain.FileInfo) (*domain.Extraction, error)
}

// ExtractorRegistry selects the extractor for a library file.
type ExtractorRegistry interface {
	// ForPath returns the extractor responsible for the file.
	// Returns domain.ErrUnsupportedFileType when no extractor matches.
	ForPath(path string) (Extractor, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedExtensions returns all extensions with a registered
	// extractor, sorted.
	SupportedExtensions() []string
}
