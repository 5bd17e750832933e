package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes the indexed documents for browsing.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns indexed documents, optionally filtered to one category.
func (s *DocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx, category)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent returns the full extracted text of a document.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// GetDetails returns document metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	chunkCount := 0
	if err == nil {
		chunkCount = len(chunks)
	}

	return &driving.DocumentDetails{
		ID:         doc.ID,
		Title:      doc.Title,
		Category:   doc.Category,
		RelPath:    doc.RelPath,
		Pages:      doc.Pages,
		Scanned:    doc.Scanned,
		ChunkCount: chunkCount,
		SizeBytes:  doc.SizeBytes,
		ModTime:    doc.ModTime,
		IndexedAt:  doc.IndexedAt,
	}, nil
}

// Open opens the source file in the default application.
func (s *DocumentService) Open(ctx context.Context, documentID string) error {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	return openURL(doc.AbsPath)
}

// openURL opens a URL/path using the system default handler.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
