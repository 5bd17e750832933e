package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// ocrRenderDPI is the resolution pages are rasterised at before
// recognition. 300 DPI is the usual sweet spot for tesseract.
const ocrRenderDPI = "300"

// CommandRunner abstracts external command execution for testing.
type CommandRunner interface {
	// Run executes the command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// CheckOCRTools verifies the OCR binaries are installed.
func CheckOCRTools() error {
	for _, tool := range []string{"pdftoppm", "tesseract"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s is not installed\n%s",
				domain.ErrOCRToolNotFound, tool, InstallInstructions())
		}
	}
	return nil
}

// InstallInstructions returns platform install hints for the OCR tools.
func InstallInstructions() string {
	return `OCR for scanned PDFs needs poppler and tesseract:
  macOS:  brew install poppler tesseract
  Debian: apt install poppler-utils tesseract-ocr`
}

// recognisePage renders one page to an image with pdftoppm and runs
// tesseract over it.
func (e *Extractor) recognisePage(ctx context.Context, pdfPath string, page int) (string, error) {
	dir, err := os.MkdirTemp("", "docent-ocr-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	pageArg := strconv.Itoa(page)
	_, err = e.runner.Run(ctx, "pdftoppm",
		"-f", pageArg, "-l", pageArg, "-r", ocrRenderDPI, "-png", pdfPath, prefix)
	if err != nil {
		return "", fmt.Errorf("render page %d: %w", page, err)
	}

	// pdftoppm appends a page number of varying width to the prefix.
	images, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("no image rendered for page %d", page)
	}

	out, err := e.runner.Run(ctx, "tesseract", images[0], "stdout")
	if err != nil {
		return "", fmt.Errorf("recognise page %d: %w", page, err)
	}
	return string(out), nil
}
