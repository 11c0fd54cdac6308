//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/crosslink-tools/crosslink/internal/graph"
)

// persistGraph is unavailable without CGO because the KuzuDB driver wraps a
// C library.
func persistGraph(_ context.Context, _ string, _ *graph.Result) error {
	return errors.New("persist: this build has no KuzuDB support (requires CGO)")
}
