package graph

import "sort"

// EdgeMap is an adjacency list over absolute file paths. A key maps to the
// set of paths it depends on; duplicates are collapsed and order carries no
// meaning. A key with an empty slice means "no dependencies" — a missing key
// means the path was never discovered.
type EdgeMap map[string][]string

// MissingMap maps a source file path to the raw, unresolved reference
// strings (not paths) that could not be turned into a real file.
type MissingMap map[string][]string

// Result is the output of one full gather run.
type Result struct {
	Resolved EdgeMap    `json:"resolved"`
	Missing  MissingMap `json:"missing"`
}

// Stats summarizes a gather result.
type Stats struct {
	FileCount    int `json:"fileCount"`
	EdgeCount    int `json:"edgeCount"`
	MissingCount int `json:"missingCount"`
}

// Stats computes node, edge and missing-reference counts for the result.
func (r *Result) Stats() Stats {
	s := Stats{FileCount: len(r.Resolved)}
	for _, deps := range r.Resolved {
		s.EdgeCount += len(deps)
	}
	for _, refs := range r.Missing {
		s.MissingCount += len(refs)
	}
	return s
}

// SortedKeys returns the keys of an EdgeMap in lexical order.
func (e EdgeMap) SortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
