package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docent/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Docent resources.
	uriScheme = "docent://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing all indexed documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all indexed documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for documents in one library category.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}/documents",
		Name:        "category-documents",
		Description: "Documents indexed in a specific category",
		MIMEType:    "application/json",
	}, s.handleCategoryDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Extracted text of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// marshalDocumentList renders documents as the simplified JSON list
// served by the document resources.
func marshalDocumentList(docs []domain.Document) (string, error) {
	type docInfo struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		RelPath  string `json:"rel_path"`
		Pages    int    `json:"pages"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:       docs[i].ID,
			Title:    docs[i].Title,
			Category: docs[i].Category,
			RelPath:  docs[i].RelPath,
			Pages:    docs[i].Pages,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling documents: %w", err)
	}

	return string(data), nil
}

// handleDocumentsResource returns a list of all indexed documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Document.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	text, err := marshalDocumentList(docs)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handleCategoryDocumentsResource returns documents for a specific category.
func (s *Server) handleCategoryDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract category from URI: docent://categories/{category}/documents
	category := extractCategory(req.Params.URI)
	if category == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Document.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	text, err := marshalDocumentList(docs)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handleDocumentContentResource returns the extracted text of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: docent://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// extractCategory extracts the category from a URI like docent://categories/{category}/documents.
func extractCategory(uri string) string {
	const prefix = uriScheme + "categories/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDocumentID extracts the document ID from a URI like docent://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
