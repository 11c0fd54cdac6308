package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslink-tools/crosslink/internal/analyze"
	"github.com/crosslink-tools/crosslink/internal/builder"
	"github.com/crosslink-tools/crosslink/internal/graph"
	"github.com/crosslink-tools/crosslink/internal/resolve"
)

// cannedAnalyzer reports fixed references keyed by base name.
type cannedAnalyzer struct {
	refs map[string][]string
}

func (c *cannedAnalyzer) Match(path string) bool { return analyze.MatchesKind(path, "ts") }
func (c *cannedAnalyzer) Kinds() []string        { return []string{"ts"} }

func (c *cannedAnalyzer) Process(_ context.Context, file analyze.File, _ analyze.Runtime) ([]string, error) {
	return c.refs[filepath.Base(file.Path)], nil
}

func newGatheredService(t *testing.T) (*GraphService, string) {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	b, err := builder.New(builder.Config{
		Roots: []string{dir},
		Analyzers: []analyze.Analyzer{&cannedAnalyzer{refs: map[string][]string{
			"a.ts": {"./b.ts", "./vanished.ts"},
			"b.ts": {"./c.ts"},
		}}},
		Resolver: &resolve.NodeResolver{},
	})
	require.NoError(t, err)

	svc := NewGraphService(b)
	_, out, err := svc.GatherGraph(context.Background(), nil, GatherGraphInput{})
	require.NoError(t, err)
	require.Equal(t, 3, out.Stats.FileCount)
	return svc, dir
}

func TestGatherGraph_Stats(t *testing.T) {
	svc, _ := newGatheredService(t)

	_, out, err := svc.GatherGraph(context.Background(), nil, GatherGraphInput{BatchSize: 2})
	require.NoError(t, err)
	assert.Equal(t, graph.Stats{FileCount: 3, EdgeCount: 2, MissingCount: 1}, out.Stats)
}

func TestGetDependencies(t *testing.T) {
	svc, dir := newGatheredService(t)

	_, out, err := svc.GetDependencies(context.Background(), nil,
		GetDependenciesInput{Entrypoints: []string{filepath.Join(dir, "a.ts")}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.ts"), filepath.Join(dir, "c.ts")}, out.Paths)
}

func TestGetReferences(t *testing.T) {
	svc, dir := newGatheredService(t)

	_, out, err := svc.GetReferences(context.Background(), nil,
		GetReferencesInput{Entrypoints: []string{filepath.Join(dir, "c.ts")}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.ts"), filepath.Join(dir, "b.ts")}, out.Paths)
}

func TestListMissing(t *testing.T) {
	svc, dir := newGatheredService(t)

	_, out, err := svc.ListMissing(context.Background(), nil, ListMissingInput{})
	require.NoError(t, err)
	assert.Equal(t, graph.MissingMap{
		filepath.Join(dir, "a.ts"): {"./vanished.ts"},
	}, out.Missing)
}

func TestQueriesRequireGather(t *testing.T) {
	svc := NewGraphService(nil)

	_, _, err := svc.GetDependencies(context.Background(), nil,
		GetDependenciesInput{Entrypoints: []string{"/x.ts"}})
	assert.ErrorContains(t, err, "gather_graph first")

	_, _, err = svc.GetReferences(context.Background(), nil,
		GetReferencesInput{Entrypoints: []string{"/x.ts"}})
	assert.ErrorContains(t, err, "gather_graph first")

	_, _, err = svc.ListMissing(context.Background(), nil, ListMissingInput{})
	assert.ErrorContains(t, err, "gather_graph first")
}

func TestQueriesRequireEntrypoints(t *testing.T) {
	svc, _ := newGatheredService(t)

	_, _, err := svc.GetDependencies(context.Background(), nil, GetDependenciesInput{})
	assert.ErrorContains(t, err, "entrypoints is required")

	_, _, err = svc.GetReferences(context.Background(), nil, GetReferencesInput{})
	assert.ErrorContains(t, err, "entrypoints is required")
}
