package graph

import (
	"sort"
	"testing"
)

func collect(g DirectedGraph, visited map[string]bool, roots ...string) []string {
	var out []string
	for node := range g.WalkFrom(visited, roots...) {
		out = append(out, node)
	}
	return out
}

func asSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func TestWalkFrom_ReachableSet(t *testing.T) {
	g := New(EdgeMap{
		"a": {"b", "d"},
		"b": {"c"},
		"c": {},
		"d": {},
		"e": {"a"}, // not reachable from a
	})

	got := asSet(collect(g, nil, "a"))
	want := map[string]bool{"a": true, "b": true, "c": true, "d": true}

	if len(got) != len(want) {
		t.Fatalf("reachable set = %v, want %v", got, want)
	}
	for node := range want {
		if !got[node] {
			t.Errorf("missing node %q in %v", node, got)
		}
	}
}

func TestWalkFrom_NoDuplicates(t *testing.T) {
	// b is reachable from both roots; it must be yielded exactly once.
	g := New(EdgeMap{
		"a": {"b"},
		"c": {"b"},
	})

	got := collect(g, nil, "a", "c")
	seen := make(map[string]int)
	for _, node := range got {
		seen[node]++
	}
	for node, n := range seen {
		if n != 1 {
			t.Errorf("node %q yielded %d times", node, n)
		}
	}
	if len(seen) != 3 {
		t.Errorf("got %v, want exactly {a, b, c}", got)
	}
}

func TestWalkFrom_CycleTerminates(t *testing.T) {
	g := New(EdgeMap{
		"a": {"b"},
		"b": {"a"},
	})

	got := collect(g, nil, "a")
	if len(got) != 2 {
		t.Fatalf("cycle walk = %v, want {a, b}", got)
	}
}

func TestWalkFrom_MissingKeyMeansNoEdges(t *testing.T) {
	g := New(EdgeMap{"a": {"ghost"}})

	got := collect(g, nil, "a")
	want := []string{"a", "ghost"}
	sort.Strings(got)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("walk = %v, want %v", got, want)
	}
}

func TestWalkFrom_SharedVisitedSet(t *testing.T) {
	g := New(EdgeMap{"a": {"b"}})

	visited := map[string]bool{"b": true}
	got := collect(g, visited, "a")
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("walk with pre-visited b = %v, want [a]", got)
	}
}

func TestTranspose_ReversesEdges(t *testing.T) {
	g := New(EdgeMap{
		"a": {"b", "c"},
		"b": {"c"},
	})

	inv := g.Transpose()

	if got := asSet(inv.edges["c"]); !got["a"] || !got["b"] {
		t.Errorf("transpose[c] = %v, want {a, b}", inv.edges["c"])
	}
	if got := asSet(inv.edges["b"]); !got["a"] {
		t.Errorf("transpose[b] = %v, want {a}", inv.edges["b"])
	}
	// a has no in-edges, so it is absent as a key.
	if _, ok := inv.edges["a"]; ok {
		t.Errorf("transpose has key a, want absent")
	}
}

func TestTranspose_TargetsBecomeKeys(t *testing.T) {
	// c has no outgoing edges in the original, but as an edge target it
	// must become a key with a non-empty successor set.
	g := New(EdgeMap{"a": {"c"}})

	inv := g.Transpose()
	if len(inv.edges["c"]) == 0 {
		t.Fatal("transpose missing key for edge target c")
	}
}

func TestTranspose_RoundTripReachability(t *testing.T) {
	edges := EdgeMap{
		"a": {"b"},
		"b": {"c", "d"},
		"d": {"a"},
	}
	g := New(edges)
	round := g.Transpose().Transpose()

	pairs := func(g DirectedGraph) map[[2]string]bool {
		out := make(map[[2]string]bool)
		for src, dsts := range g.edges {
			for _, dst := range dsts {
				out[[2]string{src, dst}] = true
			}
		}
		return out
	}

	got, want := pairs(round), pairs(g)
	if len(got) != len(want) {
		t.Fatalf("round-trip edge pairs = %v, want %v", got, want)
	}
	for p := range want {
		if !got[p] {
			t.Errorf("round-trip lost edge %v", p)
		}
	}
}
