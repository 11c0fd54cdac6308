// Package resolve turns raw reference strings into real absolute file
// paths. The Resolver interface is the seam the graph builder depends on;
// NodeResolver is the default implementation for web source trees.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no resolution strategy produced a real file.
var ErrNotFound = errors.New("resolve: reference not found")

// Resolver resolves a single reference scoped to the directory containing
// the referencing file. Implementations return the absolute, real path of
// the target file, or an error (typically wrapping ErrNotFound).
type Resolver interface {
	Resolve(fromDir, ref string) (string, error)
}

// candidateSuffixes are probed in order when a reference omits its
// extension or names a directory.
var candidateSuffixes = []string{
	"",
	".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
	".css", ".scss",
	"/index.ts", "/index.tsx", "/index.js",
}

// NodeResolver resolves references the way a web bundler does: absolute
// paths verbatim, relative specifiers against the referencing directory
// with extension and index-file probing, and bare specifiers against an
// optional modules directory (e.g. node_modules).
type NodeResolver struct {
	// ModulesDir is the directory bare specifiers are probed under. Empty
	// disables bare-specifier resolution.
	ModulesDir string
}

var _ Resolver = (*NodeResolver)(nil)

// Resolve implements Resolver.
func (r *NodeResolver) Resolve(fromDir, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	var base string
	switch {
	case filepath.IsAbs(ref):
		base = ref
	case isRelative(ref):
		base = filepath.Join(fromDir, ref)
	case r.ModulesDir != "":
		base = filepath.Join(r.ModulesDir, ref)
	default:
		return "", fmt.Errorf("%w: bare specifier %q", ErrNotFound, ref)
	}

	for _, suffix := range candidateSuffixes {
		candidate := base + suffix
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		real, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", ref, err)
		}
		return filepath.Abs(real)
	}

	return "", fmt.Errorf("%w: %q from %s", ErrNotFound, ref, fromDir)
}

func isRelative(ref string) bool {
	return len(ref) > 0 && ref[0] == '.'
}
