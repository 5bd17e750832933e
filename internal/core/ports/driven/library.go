package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// DocumentLibrary provides access to the library tree on disk.
// The library is a root directory with one subdirectory per category:
//
//	documents/
//	  HR/
//	    onboarding-handbook.pdf
//	  Finance/
//	    expense-policy.pdf
type DocumentLibrary interface {
	// Root returns the absolute library root path.
	Root() string

	// Discover walks the library and returns every supported file.
	// Hidden files, files outside a category directory, and files
	// matching an exclude pattern are skipped.
	Discover(ctx context.Context) ([]domain.FileInfo, error)

	// Categories returns the category directory names present on disk,
	// sorted, including empty categories.
	Categories(ctx context.Context) ([]string, error)

	// Watch emits an event whenever a supported library file changes.
	// The channel closes when ctx is cancelled. Events carry no
	// content; they only signal that a rebuild is due.
	Watch(ctx context.Context) (<-chan domain.LibraryEvent, error)
}
