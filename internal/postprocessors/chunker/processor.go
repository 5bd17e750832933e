// Package chunker provides a boundary-aware text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// Processor splits document content into overlapping chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks. Chunk ends prefer
// paragraph, then sentence, then word boundaries near the target size.
// Input chunks are ignored; the chunker always starts from the content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	runes := []rune(doc.Content)
	total := len(runes)

	estimatedChunks := (total / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	seq := 0
	start := 0

	for start < total {
		end := start + p.chunkSize
		if end >= total {
			end = total
		} else {
			end = splitPoint(runes, start, end)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, domain.Chunk{
				ID:         chunkID(doc.ID, seq),
				DocumentID: doc.ID,
				Seq:        seq,
				Page:       pageAt(doc.PageOffsets, start),
				Offset:     start,
				Content:    content,
			})
			seq++
		}

		if end == total {
			break
		}

		// Move start forward, keeping the overlap from the chunk end
		next := end - p.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks, nil
}

// splitPoint returns the end of a chunk that starts at start and
// would naively end at target, pulled back to the nearest paragraph,
// sentence, or word boundary within the final quarter of the chunk.
func splitPoint(runes []rune, start, target int) int {
	window := target - (target-start)/4

	// Paragraph boundary: two consecutive newlines
	for i := target - 1; i > window; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i + 1
		}
	}

	// Sentence boundary: terminator followed by whitespace
	for i := target - 1; i > window; i-- {
		if isSentenceEnd(runes[i-1]) && unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	// Word boundary
	for i := target - 1; i > window; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	return target
}

// isSentenceEnd reports whether r terminates a sentence.
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// pageAt returns the 1-based page containing the rune offset.
// Pages with no text share an offset with the following page; the
// later page wins so chunks land on the page that holds their text.
func pageAt(pageOffsets []int, offset int) int {
	if len(pageOffsets) == 0 {
		return 1
	}
	page := 1
	for i, off := range pageOffsets {
		if offset >= off {
			page = i + 1
		} else {
			break
		}
	}
	return page
}

// chunkID derives a stable chunk ID from the document ID and the
// chunk's position, so rebuilding an unchanged document produces
// identical chunk IDs.
func chunkID(documentID string, seq int) string {
	name := fmt.Sprintf("%s:%d", documentID, seq)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
