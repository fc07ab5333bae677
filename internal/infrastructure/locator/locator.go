// Package locator finds the build root of the foreign module inside a cloned
// source tree.
package locator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/altuslabsxyz/proof-bridge/internal/paths"
)

// ErrNotFound is returned when no directory within the search bound holds the marker.
var ErrNotFound = errors.New("entry point not found")

// DefaultMaxDepth bounds the recursive walk. The root is depth 0.
const DefaultMaxDepth = 3

// DefaultCandidates are checked, in order, before any walk.
var DefaultCandidates = []string{".", "cmd/prover", "prover"}

// skipDirs are never descended into: version control, vendored code,
// package manager caches and build output.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".bzr":         {},
	"vendor":       {},
	"third_party":  {},
	"node_modules": {},
	".npm":         {},
	".yarn":        {},
	".cache":       {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"out":          {},
	"bin":          {},
	"_obj":         {},
}

// IsSkipped reports whether a directory with this base name is excluded from the walk.
func IsSkipped(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// Locator searches for the directory holding Marker.
type Locator struct {
	Marker     string   // file that identifies the build root, e.g. main.go
	Candidates []string // slash-separated paths relative to the root
	MaxDepth   int

	logger *slog.Logger
}

// New creates a Locator with the default marker, candidates and depth.
func New(logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		Marker:     paths.EntryPointFile,
		Candidates: DefaultCandidates,
		MaxDepth:   DefaultMaxDepth,
		logger:     logger,
	}
}

// Locate returns the directory containing the marker file. Conventional
// locations win over the walk; within the walk entries are visited in
// lexical order, so the result is stable for a given tree.
func (l *Locator) Locate(root string) (string, error) {
	for _, rel := range l.Candidates {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if l.hasMarker(dir) {
			l.logger.Debug("entry point found at conventional path", "dir", dir)
			return dir, nil
		}
	}

	l.logger.Debug("searching for entry point", "root", root, "marker", l.Marker, "maxDepth", l.MaxDepth)
	if dir, ok := l.walk(root, 0); ok {
		return dir, nil
	}

	return "", fmt.Errorf("%w: no %s within depth %d of %s", ErrNotFound, l.Marker, l.MaxDepth, root)
}

func (l *Locator) walk(dir string, depth int) (string, bool) {
	if l.hasMarker(dir) {
		return dir, true
	}
	if depth >= l.MaxDepth {
		return "", false
	}

	// os.ReadDir sorts by name. Symlinks report a non-directory type and are
	// not followed.
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() || IsSkipped(entry.Name()) {
			continue
		}
		if found, ok := l.walk(filepath.Join(dir, entry.Name()), depth+1); ok {
			return found, true
		}
	}
	return "", false
}

func (l *Locator) hasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, l.Marker))
	return err == nil && info.Mode().IsRegular()
}
