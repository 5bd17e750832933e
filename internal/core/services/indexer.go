package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexService = (*IndexerService)(nil)

// IndexerService rebuilds the index from the document library. Every
// rebuild produces a fresh generation: the library is re-read in full
// and the previous generation is replaced wholesale, never patched.
type IndexerService struct {
	library     driven.DocumentLibrary
	extractors  driven.ExtractorRegistry
	pipeline    driven.PostProcessorPipeline
	embedder    driven.EmbeddingService
	vectorIndex driven.VectorIndex
	docStore    driven.DocumentStore
	stateStore  driven.IndexStateStore

	// Single-flight tracking
	mu      sync.Mutex
	running bool
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(
	library driven.DocumentLibrary,
	extractors driven.ExtractorRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	docStore driven.DocumentStore,
	stateStore driven.IndexStateStore,
) *IndexerService {
	return &IndexerService{
		library:     library,
		extractors:  extractors,
		pipeline:    pipeline,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		docStore:    docStore,
		stateStore:  stateStore,
	}
}

// Reindex rebuilds the whole index from the library. Only one rebuild
// runs at a time; a second call while one is in flight returns
// domain.ErrReindexRunning. The previous generation stays intact until
// the new one has been embedded, so a failed run never leaves the
// index half-built.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *IndexerService) Reindex(ctx context.Context) (*domain.IndexReport, error) {
	if !s.begin() {
		return nil, domain.ErrReindexRunning
	}
	defer s.end()

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	report := &domain.IndexReport{
		Generation: uuid.NewString(),
		StartedAt:  time.Now().UTC(),
	}

	logger.Section("Index Rebuild")
	logger.Info("Generation %s", report.Generation)

	// 1. Discover library files
	files, err := s.library.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover library: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", domain.ErrNoDocuments, s.library.Root())
	}
	logger.Info("Discovered %d files", len(files))

	// 2. Extract and chunk every file
	var (
		documents []domain.Document
		chunks    []domain.Chunk
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, docChunks, ocrPages, err := s.processFile(ctx, file)
		if err != nil {
			logger.Warn("Skipping %s: %v", file.RelPath, err)
			report.Skipped = append(report.Skipped, domain.SkippedFile{
				RelPath: file.RelPath,
				Reason:  err.Error(),
			})
			continue
		}
		report.OCRPages += ocrPages
		documents = append(documents, *doc)
		chunks = append(chunks, docChunks...)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: no file yielded any text", domain.ErrNoDocuments)
	}
	logger.Info("Extracted %d documents into %d chunks", len(documents), len(chunks))

	// 3. Embed all chunks
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	logger.Info("Embedding %d chunks with %s", len(chunks), s.embedder.ModelName())
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	// 4. Replace the stored generation
	if err := s.docStore.ReplaceAll(ctx, documents, chunks); err != nil {
		return nil, fmt.Errorf("store documents: %w", err)
	}

	// 5. Rebuild the vector index
	if err := s.vectorIndex.Rebuild(ctx, report.Generation, s.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("rebuild vector index: %w", err)
	}
	categoryByDoc := make(map[string]string, len(documents))
	for i := range documents {
		categoryByDoc[documents[i].ID] = documents[i].Category
	}
	entries := make([]driven.VectorEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = driven.VectorEntry{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Category:   categoryByDoc[chunk.DocumentID],
			Page:       chunk.Page,
			Content:    chunk.Content,
			Embedding:  chunk.Embedding,
		}
	}
	if err := s.vectorIndex.Add(ctx, entries); err != nil {
		return nil, fmt.Errorf("add vectors: %w", err)
	}

	// 6. Record the generation status
	categories := make(map[string]int)
	for i := range documents {
		categories[documents[i].Category]++
	}
	report.FinishedAt = time.Now().UTC()
	report.DocumentCount = len(documents)
	report.ChunkCount = len(chunks)
	status := domain.IndexStatus{
		Generation:          report.Generation,
		BuiltAt:             report.FinishedAt,
		DocumentCount:       report.DocumentCount,
		ChunkCount:          report.ChunkCount,
		Categories:          categories,
		EmbeddingModel:      s.embedder.ModelName(),
		EmbeddingDimensions: s.embedder.Dimensions(),
	}
	if err := s.stateStore.SaveStatus(ctx, status); err != nil {
		return nil, fmt.Errorf("save index status: %w", err)
	}

	logger.Info("Indexed %d documents (%d chunks, %d OCR pages) in %s",
		report.DocumentCount, report.ChunkCount, report.OCRPages,
		report.Duration().Round(time.Millisecond))
	return report, nil
}

// Status returns the status of the last completed rebuild.
func (s *IndexerService) Status(ctx context.Context) (*domain.IndexStatus, error) {
	return s.stateStore.GetStatus(ctx)
}

// Running reports whether a rebuild is currently in flight.
func (s *IndexerService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// begin claims the single rebuild slot. It returns false when another
// rebuild holds it.
func (s *IndexerService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *IndexerService) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// processFile turns one library file into a document and its chunks.
func (s *IndexerService) processFile(ctx context.Context, file domain.FileInfo) (*domain.Document, []domain.Chunk, int, error) {
	// 1. Find an extractor for the file type
	extractor, err := s.extractors.ForPath(file.AbsPath)
	if err != nil {
		return nil, nil, 0, err
	}

	// 2. Extract per-page text
	extraction, err := extractor.Extract(ctx, file)
	if err != nil {
		return nil, nil, 0, err
	}
	if extraction.Empty() {
		return nil, nil, 0, fmt.Errorf("no extractable text")
	}

	// 3. Hash the file bytes for the stable document identity
	hash, err := hashFile(file.AbsPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("hash file: %w", err)
	}

	content, offsets := pageLayout(extraction.Pages)
	doc := &domain.Document{
		ID:          documentID(file.RelPath, hash),
		Category:    file.Category,
		Title:       extraction.Title,
		RelPath:     file.RelPath,
		AbsPath:     file.AbsPath,
		Content:     content,
		Pages:       len(extraction.Pages),
		PageOffsets: offsets,
		Scanned:     extraction.Scanned(),
		ContentHash: hash,
		SizeBytes:   file.SizeBytes,
		ModTime:     file.ModTime,
		IndexedAt:   time.Now().UTC(),
	}

	// 4. Clean and chunk
	docChunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(docChunks) == 0 {
		return nil, nil, 0, fmt.Errorf("no chunks produced")
	}

	return doc, docChunks, extraction.OCRPages(), nil
}

// documentID derives a stable document ID from the file's relative
// path and content hash, so an unchanged file keeps its ID across
// rebuilds.
func documentID(relPath, contentHash string) string {
	name := fmt.Sprintf("%s:%s", relPath, contentHash)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// hashFile returns the hex-encoded SHA-256 of the file bytes.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// pageLayout joins per-page text into the document content, recording
// the rune offset where each page starts so chunks can be attributed
// to pages. Pages with no text share their offset with the following
// page, matching how the cleaner recomputes offsets.
func pageLayout(pages []domain.PageText) (string, []int) {
	var b strings.Builder
	offsets := make([]int, len(pages))
	pos := 0
	for i, page := range pages {
		text := strings.TrimSpace(page.Text)
		if text != "" && b.Len() > 0 {
			b.WriteString("\n\n")
			pos += 2
		}
		offsets[i] = pos
		b.WriteString(text)
		pos += utf8.RuneCountInString(text)
	}
	for i := len(pages) - 2; i >= 0; i-- {
		if strings.TrimSpace(pages[i].Text) == "" {
			offsets[i] = offsets[i+1]
		}
	}
	return b.String(), offsets
}
