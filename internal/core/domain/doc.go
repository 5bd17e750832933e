// Package domain defines the core business entities for Docent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an indexed document from the library
//   - Chunk: an embeddable unit within a document
//   - Answer: a generated answer with cited sources
//   - Conversation: an in-memory chat history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
