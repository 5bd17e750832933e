// Package pdf provides text extraction for PDF files, with an OCR
// fallback for scanned pages.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// scannedPageThreshold is the minimum number of non-whitespace
// characters a page must yield before its text is trusted as digital.
// Pages below the threshold are treated as scanned and routed to OCR.
const scannedPageThreshold = 100

// maxTitleLength caps how long a line can be and still be used as
// the document title.
const maxTitleLength = 200

// Extractor handles PDF documents.
type Extractor struct {
	runner CommandRunner
}

// New creates a new PDF extractor using the system pdftoppm and
// tesseract binaries for OCR.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used in tests to avoid invoking real binaries.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract pulls per-page text from the PDF. Pages whose direct
// extraction comes back short are treated as scanned and recognised
// with OCR instead.
func (e *Extractor) Extract(ctx context.Context, file domain.FileInfo) (*domain.Extraction, error) {
	direct, err := readPages(file.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", file.RelPath, err)
	}

	pages, err := e.assemble(ctx, file.AbsPath, direct)
	if err != nil {
		return nil, err
	}

	extraction := &domain.Extraction{Pages: pages}
	extraction.Title = extractTitle(extraction.Content(), file.RelPath)
	return extraction, nil
}

// assemble fills in OCR text for pages whose direct extraction came
// back short. Missing OCR tools fail the document; a failed OCR run
// degrades to whatever direct text the page had, with a warning.
func (e *Extractor) assemble(ctx context.Context, absPath string, direct []string) ([]domain.PageText, error) {
	pages := make([]domain.PageText, len(direct))
	checkedTools := false

	for i, text := range direct {
		num := i + 1
		if !pageNeedsOCR(text) {
			pages[i] = domain.PageText{Number: num, Text: text}
			continue
		}

		// Check for the OCR binaries once, on the first scanned page.
		if !checkedTools {
			if err := CheckOCRTools(); err != nil {
				return nil, err
			}
			checkedTools = true
		}

		recognised, err := e.recognisePage(ctx, absPath, num)
		if err != nil {
			logger.Warn("OCR failed for page %d of %s: %v", num, absPath, err)
			pages[i] = domain.PageText{Number: num, Text: text}
			continue
		}

		pages[i] = domain.PageText{Number: num, Text: recognised, OCR: true}
	}

	return pages, nil
}

// pageNeedsOCR reports whether direct extraction came back too short
// to be trusted, which is the signature of a scanned page.
func pageNeedsOCR(text string) bool {
	return countNonWhitespace(text) < scannedPageThreshold
}

// countNonWhitespace counts the non-whitespace runes in s.
func countNonWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// readPages extracts the raw text of every page in order.
// The pdf library panics on some malformed files, so the whole read
// is wrapped in a recover.
func readPages(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdfreader.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := reader.NumPage()
	pages = make([]string, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable pages stay empty; OCR picks them up.
			continue
		}
		pages[i-1] = text
	}
	return pages, nil
}

// extractTitle picks the first short non-empty line as the title,
// falling back to the filename.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxTitleLength {
			continue
		}
		return line
	}

	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
