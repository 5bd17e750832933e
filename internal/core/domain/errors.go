package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates a library file with no extractor.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrReindexRunning indicates a rebuild is already in progress.
	// Re-index is single-flight; callers should retry once it finishes.
	ErrReindexRunning = errors.New("reindex already running")

	// ErrNoDocuments indicates the library holds no supported files.
	ErrNoDocuments = errors.New("no documents in library")

	// ErrIndexEmpty indicates no index generation has been built yet.
	ErrIndexEmpty = errors.New("index is empty, run reindex first")

	// ErrLLMUnavailable indicates the LLM service is not configured
	// or unreachable. Answer generation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Both indexing and retrieval need it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates a vector whose dimension differs
	// from the one the index was built with.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrNoAPIKey indicates the selected provider needs an API key
	// and none was found in the environment or settings.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrRateLimited indicates the provider API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrOCRToolNotFound indicates the OCR fallback tools are not installed.
	// Scanned pages cannot be read without them.
	ErrOCRToolNotFound = errors.New("OCR tools not found")

	// ErrInvalidCategory indicates a category name that is not a
	// plain directory name.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrConversationNotFound indicates an unknown conversation ID.
	ErrConversationNotFound = errors.New("conversation not found")
)
