//go:build cgo

package main

import (
	"context"
	"errors"

	"github.com/crosslink-tools/crosslink/internal/graph"
)

// persistGraph writes the gather result into the configured KuzuDB.
func persistGraph(ctx context.Context, dbPath string, result *graph.Result) error {
	if dbPath == "" {
		return errors.New("persist: no graphDB path configured")
	}
	store, err := graph.NewKuzuFileStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Persist(ctx, result)
}
