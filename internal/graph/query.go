package graph

import "sort"

// Dependencies returns every path transitively reachable from the
// entrypoints along forward edges, excluding the entrypoints themselves.
// The result is sorted and duplicate-free; it is empty when no path of
// length >= 1 exists from any entrypoint.
func Dependencies(edges EdgeMap, entrypoints []string) []string {
	return closure(New(edges), entrypoints)
}

// References answers the reverse query: every path that transitively
// depends on one of the entrypoints, excluding the entrypoints themselves.
// Equivalent to Dependencies over the transposed graph.
func References(edges EdgeMap, entrypoints []string) []string {
	return closure(New(edges).Transpose(), entrypoints)
}

func closure(g DirectedGraph, entrypoints []string) []string {
	roots := make(map[string]bool, len(entrypoints))
	for _, e := range entrypoints {
		roots[e] = true
	}

	var out []string
	for node := range g.WalkFrom(nil, entrypoints...) {
		if !roots[node] {
			out = append(out, node)
		}
	}
	sort.Strings(out)
	return out
}
