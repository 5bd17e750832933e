// Package mcp provides an MCP (Model Context Protocol) server adapter for Docent.
// It enables AI assistants like Claude to ask questions against the local document library.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
