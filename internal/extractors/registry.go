package extractors

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/extractors/markdown"
	"github.com/custodia-labs/docent/internal/extractors/pdf"
	"github.com/custodia-labs/docent/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to their extractors.
// Registration happens at startup; lookups are read-only after that.
type Registry struct {
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(plaintext.New())
	r.Register(markdown.New())
	return r
}

// Register adds an extractor for each extension it reports.
// A later registration for the same extension wins.
func (r *Registry) Register(extractor driven.Extractor) {
	for _, ext := range extractor.Extensions() {
		r.extractors[strings.ToLower(ext)] = extractor
	}
}

// ForPath returns the extractor responsible for the file.
// Matching is by extension, case-insensitive.
func (r *Registry) ForPath(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	return extractor, nil
}

// SupportedExtensions returns all registered extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
