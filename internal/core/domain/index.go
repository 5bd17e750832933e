package domain

import "time"

// IndexStatus describes the current index generation.
type IndexStatus struct {
	// Generation identifies the current index build. Re-indexing
	// replaces the generation wholesale.
	Generation string

	// BuiltAt is when the generation finished building.
	BuiltAt time.Time

	// DocumentCount is the number of indexed documents.
	DocumentCount int

	// ChunkCount is the number of indexed chunks.
	ChunkCount int

	// Categories maps category name to indexed document count.
	Categories map[string]int

	// EmbeddingModel is the model the generation was embedded with.
	EmbeddingModel string

	// EmbeddingDimensions is the vector dimension of the generation.
	EmbeddingDimensions int
}

// SkippedFile records a library file a rebuild could not index.
type SkippedFile struct {
	// RelPath is the file path relative to the library root.
	RelPath string

	// Reason is a short human-readable explanation.
	Reason string
}

// IndexReport is the outcome of one full rebuild.
type IndexReport struct {
	// Generation is the identifier of the build.
	Generation string

	// StartedAt is when the rebuild began.
	StartedAt time.Time

	// FinishedAt is when the rebuild completed.
	FinishedAt time.Time

	// DocumentCount is the number of documents indexed.
	DocumentCount int

	// ChunkCount is the number of chunks embedded and stored.
	ChunkCount int

	// OCRPages is the number of pages that needed the OCR fallback.
	OCRPages int

	// Skipped lists files that could not be indexed, with reasons.
	Skipped []SkippedFile
}

// Duration returns how long the rebuild took.
func (r IndexReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
