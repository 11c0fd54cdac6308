package mcptools

import "github.com/crosslink-tools/crosslink/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// GatherGraphInput is the input for the gather_graph MCP tool.
type GatherGraphInput struct {
	BatchSize int `json:"batchSize,omitempty" jsonschema:"number of files processed concurrently (default: 8, minimum: 1)"`
}

// GatherGraphOutput is the result of the gather_graph MCP tool.
type GatherGraphOutput struct {
	Stats graph.Stats `json:"stats"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	Entrypoints []string `json:"entrypoints" jsonschema:"absolute file paths to start the forward traversal from"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	Paths []string `json:"paths"`
}

// GetReferencesInput is the input for the get_references MCP tool.
type GetReferencesInput struct {
	Entrypoints []string `json:"entrypoints" jsonschema:"absolute file paths to start the reverse traversal from"`
}

// GetReferencesOutput is the result of the get_references MCP tool.
type GetReferencesOutput struct {
	Paths []string `json:"paths"`
}

// ListMissingInput is the input for the list_missing MCP tool.
type ListMissingInput struct{}

// ListMissingOutput is the result of the list_missing MCP tool.
type ListMissingOutput struct {
	Missing graph.MissingMap `json:"missing"`
}
