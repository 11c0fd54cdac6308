// Package discover finds candidate files across one or more root
// directories, keyed by the union of every registered analyzer's file
// kinds.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/crosslink-tools/crosslink/internal/analyze"
)

// Discoverer enumerates candidate files. The returned paths are absolute,
// symlink-resolved, sorted, and duplicate-free.
type Discoverer interface {
	Discover(roots []string, kinds []string) ([]string, error)
}

// defaultExcludeDirs are directory names never descended into.
var defaultExcludeDirs = []string{".git", "node_modules"}

// FSDiscoverer walks the real filesystem.
type FSDiscoverer struct {
	// ExcludeDirs are additional directory names to skip.
	ExcludeDirs []string
	// ExcludeGlobs are doublestar patterns matched against the
	// slash-separated path relative to the walked root.
	ExcludeGlobs []string
}

var _ Discoverer = (*FSDiscoverer)(nil)

// Discover implements Discoverer.
func (d *FSDiscoverer) Discover(roots []string, kinds []string) ([]string, error) {
	skipDir := make(map[string]bool)
	for _, name := range defaultExcludeDirs {
		skipDir[name] = true
	}
	for _, name := range d.ExcludeDirs {
		skipDir[name] = true
	}

	seen := make(map[string]bool)
	var files []string

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("discover: root %q: %w", root, err)
		}

		err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if os.IsPermission(err) {
					return filepath.SkipDir
				}
				return err
			}

			if entry.IsDir() {
				if path != absRoot && skipDir[entry.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			if !matchesKinds(path, kinds) {
				return nil
			}

			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				return err
			}
			if d.excluded(filepath.ToSlash(rel)) {
				return nil
			}

			real, err := filepath.EvalSymlinks(path)
			if err != nil {
				return fmt.Errorf("discover: %s: %w", path, err)
			}
			if !seen[real] {
				seen[real] = true
				files = append(files, real)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover: walk %s: %w", absRoot, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (d *FSDiscoverer) excluded(rel string) bool {
	for _, pattern := range d.ExcludeGlobs {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func matchesKinds(path string, kinds []string) bool {
	for _, kind := range kinds {
		if analyze.MatchesKind(path, kind) {
			return true
		}
	}
	return false
}
