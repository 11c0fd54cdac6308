package graph

import "iter"

// DirectedGraph wraps an EdgeMap for traversal. It does not copy or own the
// map; callers must not mutate it while walking. Paths absent from the map
// are treated as nodes with zero out-edges, never as an error.
type DirectedGraph struct {
	edges EdgeMap
}

// New returns a DirectedGraph over the given edge map.
func New(edges EdgeMap) DirectedGraph {
	return DirectedGraph{edges: edges}
}

// Transpose materializes a new graph with every edge reversed: each (a, b)
// in the receiver becomes (b, a) in the result. Every path that appears as
// an edge target becomes a key in the result, even if it had no out-edges
// in the original. Sources with no in-edges are absent from the result.
func (g DirectedGraph) Transpose() DirectedGraph {
	inverted := make(EdgeMap, len(g.edges))
	for source, targets := range g.edges {
		for _, target := range targets {
			inverted[target] = append(inverted[target], source)
		}
	}
	return DirectedGraph{edges: inverted}
}

// WalkFrom yields a depth-first pre-order traversal started independently
// from each root, in root order. The visited set is shared across roots, so
// a node reachable from two roots is yielded once, on first discovery.
// Passing a non-nil visited set threads it across calls; nil starts fresh.
// Sibling order is unspecified. Cycles are safe: a visited node is skipped,
// never re-yielded, never re-expanded.
func (g DirectedGraph) WalkFrom(visited map[string]bool, roots ...string) iter.Seq[string] {
	if visited == nil {
		visited = make(map[string]bool)
	}
	return func(yield func(string) bool) {
		for _, root := range roots {
			if !g.walk(root, visited, yield) {
				return
			}
		}
	}
}

// walk performs the DFS from a single node. Returns false once the consumer
// stops the iteration.
func (g DirectedGraph) walk(node string, visited map[string]bool, yield func(string) bool) bool {
	if visited[node] {
		return true
	}
	visited[node] = true
	if !yield(node) {
		return false
	}
	for _, next := range g.edges[node] {
		if !g.walk(next, visited, yield) {
			return false
		}
	}
	return true
}
