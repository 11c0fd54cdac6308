// Package analyze defines the capability contract implemented by every
// file-kind plugin, plus the built-in analyzers for the web stack: script
// modules, style modules, behavior specs, and comment directives.
package analyze

import (
	"context"
	"log/slog"
	"strings"
)

// File is one discovered source file handed to analyzers. Path is absolute
// and symlink-resolved; Contents is read exactly once per gather run.
type File struct {
	Path     string
	Contents []byte
}

// Runtime is the read-only view of the running gather that analyzers may
// consult. Implementations are safe for concurrent use.
type Runtime interface {
	// Files returns every discovered absolute path in the run. The slice
	// is shared and must not be mutated.
	Files() []string

	// ElementIndex returns the run-scoped index from declared custom
	// element names to the files declaring them. Built at most once per
	// run, on first use.
	ElementIndex(ctx context.Context) (map[string][]string, error)

	// Logger returns the run's logger.
	Logger() *slog.Logger
}

// Analyzer extracts outgoing references from files of one kind.
//
// Process returns raw reference strings the way they were written in
// source; already-absolute paths pass through resolution untouched. It must
// be idempotent and must not assume any call order relative to other
// analyzers matching the same file. A returned error marks an
// analyzer-internal failure: the analyzer contributes no references for
// that file and the run continues — except for directive errors, which are
// fatal.
type Analyzer interface {
	Match(path string) bool
	Kinds() []string
	Process(ctx context.Context, file File, rt Runtime) ([]string, error)
}

// MatchesKind reports whether path belongs to the given file kind. Kinds
// are extension suffixes without the leading dot; compound kinds such as
// "entry.json" are legal.
func MatchesKind(path, kind string) bool {
	return strings.HasSuffix(path, "."+kind)
}

// matchesAny is the common Match implementation over a kind list.
func matchesAny(path string, kinds []string) bool {
	for _, k := range kinds {
		if MatchesKind(path, k) {
			return true
		}
	}
	return false
}
