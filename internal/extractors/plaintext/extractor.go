// Package plaintext provides text extraction for plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract reads the file as UTF-8 text.
// Plain text files have no page structure, so the whole file
// becomes a single page.
func (e *Extractor) Extract(_ context.Context, file domain.FileInfo) (*domain.Extraction, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.RelPath, err)
	}

	return &domain.Extraction{
		Title: titleFromPath(file.RelPath),
		Pages: []domain.PageText{
			{Number: 1, Text: string(data)},
		},
	}, nil
}

// titleFromPath extracts a human-readable title from a file path.
func titleFromPath(path string) string {
	filename := filepath.Base(path)

	// Remove the extension for a cleaner title
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	// Replace underscores and dashes with spaces
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}
