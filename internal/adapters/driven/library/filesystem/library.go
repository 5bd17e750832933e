// Package filesystem implements the document library on a local
// directory tree. The root holds one subdirectory per category; the
// files inside a category are the library's documents.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Library implements the interface.
var _ driven.DocumentLibrary = (*Library)(nil)

// watchBuffer absorbs event bursts (a bulk copy into the library)
// without stalling the notifier goroutine.
const watchBuffer = 16

// Config holds configuration for the filesystem library.
type Config struct {
	// Root is the library root directory (required).
	Root string

	// Extensions lists the file extensions to discover, with or
	// without the leading dot. Usually the extractor registry's
	// SupportedExtensions.
	Extensions []string

	// Exclude holds glob patterns matched against paths relative to
	// the root. Matching files are skipped.
	Exclude []string
}

// Library reads documents from a local directory tree with one
// subdirectory per category.
type Library struct {
	root    string
	exts    map[string]bool
	exclude []string
}

// New creates a library rooted at cfg.Root. The root does not have to
// exist yet; it is checked on every operation, so it can be created
// after the settings are saved.
func New(cfg Config) (*Library, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("filesystem: library root is required")
	}
	if len(cfg.Extensions) == 0 {
		return nil, fmt.Errorf("filesystem: at least one file extension is required")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: resolving root %s: %w", cfg.Root, err)
	}

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &Library{root: root, exts: exts, exclude: cfg.Exclude}, nil
}

// Root returns the absolute library root path.
func (l *Library) Root() string {
	return l.root
}

// Discover walks the library one category level deep and returns every
// supported file, sorted by relative path. Hidden entries, files
// directly under the root, nested subdirectories, and excluded paths
// are skipped.
func (l *Library) Discover(ctx context.Context) ([]domain.FileInfo, error) {
	if err := l.checkRoot(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: reading %s: %w", l.root, err)
	}

	var files []domain.FileInfo //nolint:prealloc // size unknown until the walk
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isHidden(entry.Name()) {
			continue
		}
		if !entry.IsDir() {
			logger.Debug("library: skipping %s: not inside a category directory", entry.Name())
			continue
		}
		categoryFiles, err := l.discoverCategory(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, categoryFiles...)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// discoverCategory lists the supported files of one category directory.
func (l *Library) discoverCategory(ctx context.Context, category string) ([]domain.FileInfo, error) {
	dir := filepath.Join(l.root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("filesystem: reading category %s: %w", category, err)
	}

	var files []domain.FileInfo
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			logger.Debug("library: skipping %s/%s: categories are one level deep", category, entry.Name())
			continue
		}
		if isHidden(entry.Name()) || !l.supported(entry.Name()) {
			continue
		}
		rel := filepath.Join(category, entry.Name())
		if l.excluded(rel) {
			logger.Debug("library: skipping %s: excluded", rel)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn("library: stat %s: %v", rel, err)
			continue
		}
		files = append(files, domain.FileInfo{
			AbsPath:   filepath.Join(dir, entry.Name()),
			RelPath:   rel,
			Category:  category,
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		})
	}
	return files, nil
}

// Categories returns the category directory names present on disk,
// sorted, including categories with no files yet.
func (l *Library) Categories(ctx context.Context) ([]string, error) {
	if err := l.checkRoot(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: reading %s: %w", l.root, err)
	}

	categories := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		categories = append(categories, entry.Name())
	}
	sort.Strings(categories)
	return categories, nil
}

// Watch emits an event whenever a supported library file changes. The
// root and every category directory join the watch set; directories
// created under the root later are added as they appear. The channel
// closes when ctx is cancelled.
func (l *Library) Watch(ctx context.Context) (<-chan domain.LibraryEvent, error) {
	if err := l.checkRoot(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("filesystem: creating watcher: %w", err)
	}
	if err := watcher.Add(l.root); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("filesystem: watching %s: %w", l.root, err)
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("filesystem: reading %s: %w", l.root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if err := watcher.Add(filepath.Join(l.root, entry.Name())); err != nil {
			watcher.Close() //nolint:errcheck
			return nil, fmt.Errorf("filesystem: watching category %s: %w", entry.Name(), err)
		}
	}

	events := make(chan domain.LibraryEvent, watchBuffer)
	go func() {
		defer close(events)
		defer watcher.Close() //nolint:errcheck
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				change := l.handleFsEvent(watcher, ev)
				if change == nil {
					continue
				}
				select {
				case events <- *change:
				case <-ctx.Done():
					return
				}
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("library watch: %v", watchErr)
			}
		}
	}()

	return events, nil
}

// handleFsEvent translates one fsnotify event into a library event, or
// nil when the event does not concern a supported library file.
func (l *Library) handleFsEvent(watcher *fsnotify.Watcher, ev fsnotify.Event) *domain.LibraryEvent {
	rel, err := filepath.Rel(l.root, ev.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	if isHidden(rel) {
		return nil
	}

	// Entries directly under the root are category directories, or
	// loose files that never make it into the index.
	if !strings.ContainsRune(rel, filepath.Separator) {
		switch {
		case ev.Op.Has(fsnotify.Create):
			info, statErr := os.Stat(ev.Name)
			if statErr != nil || !info.IsDir() {
				return nil
			}
			if addErr := watcher.Add(ev.Name); addErr != nil {
				logger.Warn("library: watching new category %s: %v", rel, addErr)
			}
			// A directory moved into the root arrives with its files
			// already inside, so no per-file events will follow.
			return &domain.LibraryEvent{Type: domain.LibraryFileCreated, Path: ev.Name}
		case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
			// The entry is gone and cannot be stat'd. It may have been
			// a category directory whose files left with it, so this is
			// the only signal a rebuild is due.
			return &domain.LibraryEvent{Type: domain.LibraryFileRemoved, Path: ev.Name}
		default:
			return nil
		}
	}

	if !l.supported(ev.Name) || l.excluded(rel) {
		return nil
	}

	switch {
	case ev.Op.Has(fsnotify.Create):
		return &domain.LibraryEvent{Type: domain.LibraryFileCreated, Path: ev.Name}
	case ev.Op.Has(fsnotify.Write):
		return &domain.LibraryEvent{Type: domain.LibraryFileModified, Path: ev.Name}
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		return &domain.LibraryEvent{Type: domain.LibraryFileRemoved, Path: ev.Name}
	default:
		return nil
	}
}

// checkRoot verifies the library root is an existing directory.
func (l *Library) checkRoot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(l.root)
	if os.IsNotExist(err) {
		return fmt.Errorf("filesystem: library root %s does not exist", l.root)
	}
	if err != nil {
		return fmt.Errorf("filesystem: library root %s: %w", l.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("filesystem: library root %s is not a directory", l.root)
	}
	return nil
}

// supported reports whether the file's extension has an extractor.
func (l *Library) supported(name string) bool {
	return l.exts[strings.ToLower(filepath.Ext(name))]
}

// excluded reports whether rel matches one of the exclude patterns.
// A pattern without a path separator matches against the base name,
// so "*.tmp" excludes temp files in every category.
func (l *Library) excluded(rel string) bool {
	for _, pattern := range l.exclude {
		target := rel
		if !strings.ContainsRune(pattern, filepath.Separator) {
			target = filepath.Base(rel)
		}
		match, err := filepath.Match(pattern, target)
		if err != nil {
			logger.Warn("library: bad exclude pattern %q: %v", pattern, err)
			continue
		}
		if match {
			return true
		}
	}
	return false
}

// isHidden reports whether any path component starts with a dot.
// "." and ".." are path syntax, not hidden names.
func isHidden(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
