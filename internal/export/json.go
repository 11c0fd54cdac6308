package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/crosslink-tools/crosslink/internal/graph"
)

// GraphExport is the top-level JSON export structure.
type GraphExport struct {
	ExportedAt string           `json:"exportedAt"`
	Stats      graph.Stats      `json:"stats"`
	Resolved   graph.EdgeMap    `json:"resolved"`
	Missing    graph.MissingMap `json:"missing"`
}

// GenerateJSON serializes a gather result with a timestamp and summary
// stats, indented for human inspection.
func GenerateJSON(result *graph.Result) ([]byte, error) {
	export := GraphExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Stats:      result.Stats(),
		Resolved:   result.Resolved,
		Missing:    result.Missing,
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal graph: %w", err)
	}
	return data, nil
}
