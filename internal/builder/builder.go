// Package builder drives a gather run: file discovery, per-file analyzer
// fan-out, the resolution cascade, and accumulation of the resolved and
// missing maps.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/crosslink-tools/crosslink/internal/analyze"
	"github.com/crosslink-tools/crosslink/internal/directive"
	"github.com/crosslink-tools/crosslink/internal/discover"
	"github.com/crosslink-tools/crosslink/internal/graph"
	"github.com/crosslink-tools/crosslink/internal/resolve"
)

// TransformFunc rewrites a single raw reference before resolution. It may
// return the reference unchanged, a different reference, or several (e.g.
// alias-prefix expansion). It runs once per raw reference.
type TransformFunc func(ref, sourceFile string) []string

// identityTransform is the default TransformFunc.
func identityTransform(ref, _ string) []string {
	return []string{ref}
}

// Config wires a Builder.
type Config struct {
	// Roots are the directories to gather across. At least one required.
	Roots []string
	// Analyzers are the registered file-kind plugins. At least one
	// required; their kind lists drive discovery.
	Analyzers []analyze.Analyzer
	// Resolver turns references into absolute paths. Required.
	Resolver resolve.Resolver
	// Discoverer enumerates candidate files. Defaults to FSDiscoverer.
	Discoverer discover.Discoverer
	// Transform is the reference-transform hook. Defaults to identity.
	Transform TransformFunc
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Builder computes the file-level dependency graph for a source tree.
type Builder struct {
	roots      []string
	analyzers  []analyze.Analyzer
	resolver   resolve.Resolver
	discoverer discover.Discoverer
	transform  TransformFunc
	logger     *slog.Logger
}

// New validates cfg and returns a Builder.
func New(cfg Config) (*Builder, error) {
	if len(cfg.Roots) == 0 {
		return nil, errors.New("builder: at least one root directory is required")
	}
	if len(cfg.Analyzers) == 0 {
		return nil, errors.New("builder: at least one analyzer is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("builder: a resolver is required")
	}
	if cfg.Discoverer == nil {
		cfg.Discoverer = &discover.FSDiscoverer{}
	}
	if cfg.Transform == nil {
		cfg.Transform = identityTransform
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Builder{
		roots:      cfg.Roots,
		analyzers:  cfg.Analyzers,
		resolver:   cfg.Resolver,
		discoverer: cfg.Discoverer,
		transform:  cfg.Transform,
		logger:     cfg.Logger,
	}, nil
}

// GatherOptions controls one gather run.
type GatherOptions struct {
	// BatchSize bounds the number of files processed concurrently. Must
	// be >= 1. 1 degenerates to strictly sequential processing; a value
	// of the file count degenerates to full concurrency. The resulting
	// maps are identical regardless.
	BatchSize int
}

// Gather rebuilds the dependency graph from scratch: it discovers candidate
// files, runs every matching analyzer over each file, cascades the reported
// references through resolution, and returns the resolved and missing maps.
// Configuration and annotation errors abort the run; resolution failures
// are recorded in the missing map and the run continues.
func (b *Builder) Gather(ctx context.Context, opts GatherOptions) (*graph.Result, error) {
	if opts.BatchSize < 1 {
		return nil, fmt.Errorf("builder: batch size must be at least 1, got %d", opts.BatchSize)
	}

	files, err := b.discoverer.Discover(b.roots, b.kinds())
	if err != nil {
		return nil, err
	}
	b.logger.Info("gather started", "files", len(files), "batchSize", opts.BatchSize)

	rt := newRuntime(files, b.logger)

	// Per-file contributions land in an index-addressed slice and are
	// merged in discovery order, so concurrency never changes the result.
	contributions := make([]*accumulator, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.BatchSize)

	for i, path := range files {
		g.Go(func() error {
			acc, err := b.processFile(gctx, rt, path)
			if err != nil {
				return err
			}
			contributions[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &graph.Result{
		Resolved: make(graph.EdgeMap, len(files)),
		Missing:  make(graph.MissingMap),
	}
	for _, acc := range contributions {
		result.Resolved[acc.path] = acc.sortedResolved()
		if missing := acc.sortedMissing(); len(missing) > 0 {
			result.Missing[acc.path] = missing
		}
	}

	stats := result.Stats()
	b.logger.Info("gather finished",
		"files", stats.FileCount, "edges", stats.EdgeCount, "missing", stats.MissingCount)
	return result, nil
}

// kinds returns the union of every analyzer's declared kinds plus the
// builder's own reserved kinds.
func (b *Builder) kinds() []string {
	seen := make(map[string]bool)
	var kinds []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	for _, a := range b.analyzers {
		for _, k := range a.Kinds() {
			add(k)
		}
	}
	for _, k := range builderKinds {
		add(k)
	}
	return kinds
}

// processFile runs every matching analyzer over one file and applies the
// implicit-edge conventions. The returned error, if any, is fatal for the
// whole run.
func (b *Builder) processFile(ctx context.Context, rt *runtime, path string) (*accumulator, error) {
	contents, err := rt.readFile(path)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(path)
	file := analyze.File{Path: path, Contents: contents}
	matched := false

	for _, a := range b.analyzers {
		if !a.Match(path) {
			continue
		}
		matched = true

		refs, err := a.Process(ctx, file, rt)
		if err != nil {
			var dirErr *directive.Error
			if errors.As(err, &dirErr) {
				return nil, dirErr
			}
			// Recoverable analyzer failure: no edges from this
			// analyzer for this file.
			b.logger.Warn("analyzer failed", "file", path, "err", err)
			continue
		}
		for _, ref := range refs {
			b.cascade(acc, path, ref)
		}
	}

	if isEntryPoint(path) {
		matched = true
		ref, err := entryPointRef(path, contents)
		if err != nil {
			return nil, err
		}
		b.cascade(acc, path, ref)
	}

	if sibling, ok := snapshotSibling(path); ok {
		acc.addResolved(sibling)
	}

	if !matched {
		return nil, fmt.Errorf(
			"builder: no analyzer matches %s: discovery and matching criteria have diverged", path)
	}
	return acc, nil
}

// cascade applies the transform hook and resolves each produced reference
// independently; one failure never blocks sibling references.
func (b *Builder) cascade(acc *accumulator, source, ref string) {
	for _, r := range b.transform(ref, source) {
		b.resolveOne(acc, source, r)
	}
}

// resolveOne is the terminal cascade step for a single reference: built-ins
// are dropped silently, resolver failures (including errors) are recorded
// verbatim in the missing set, successes join the resolved set.
func (b *Builder) resolveOne(acc *accumulator, source, ref string) {
	if ref == "" {
		return
	}
	if IsBuiltin(ref) {
		return
	}

	path, err := b.resolver.Resolve(filepath.Dir(source), ref)
	if err != nil || path == "" {
		if err != nil && !errors.Is(err, resolve.ErrNotFound) {
			b.logger.Warn("resolver error", "file", source, "ref", ref, "err", err)
		}
		acc.addMissing(ref)
		return
	}
	acc.addResolved(path)
}

// accumulator collects one file's contribution. It is only ever touched by
// the worker processing that file.
type accumulator struct {
	path     string
	resolved map[string]bool
	missing  map[string]bool
}

func newAccumulator(path string) *accumulator {
	return &accumulator{
		path:     path,
		resolved: make(map[string]bool),
		missing:  make(map[string]bool),
	}
}

func (a *accumulator) addResolved(path string) { a.resolved[path] = true }
func (a *accumulator) addMissing(ref string)   { a.missing[ref] = true }

func (a *accumulator) sortedResolved() []string { return sortedKeys(a.resolved) }
func (a *accumulator) sortedMissing() []string  { return sortedKeys(a.missing) }

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
