package mcptools

import (
	"context"
	"errors"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crosslink-tools/crosslink/internal/builder"
	"github.com/crosslink-tools/crosslink/internal/graph"
)

// defaultBatchSize is used when a gather_graph call does not set one.
const defaultBatchSize = 8

// GraphService holds the builder and the latest gather result used by MCP
// tool handlers. Queries run against the result of the most recent
// gather_graph call.
type GraphService struct {
	builder *builder.Builder

	mu     sync.RWMutex
	result *graph.Result
}

// NewGraphService creates a GraphService around a configured builder.
func NewGraphService(b *builder.Builder) *GraphService {
	return &GraphService{builder: b}
}

// GatherGraph rebuilds the dependency graph from scratch and retains it for
// subsequent queries.
func (s *GraphService) GatherGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GatherGraphInput,
) (*mcp.CallToolResult, GatherGraphOutput, error) {
	batch := input.BatchSize
	if batch == 0 {
		batch = defaultBatchSize
	}

	result, err := s.builder.Gather(ctx, builder.GatherOptions{BatchSize: batch})
	if err != nil {
		return nil, GatherGraphOutput{}, err
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	return nil, GatherGraphOutput{Stats: result.Stats()}, nil
}

// GetDependencies answers the forward transitive-closure query.
func (s *GraphService) GetDependencies(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	edges, err := s.edges()
	if err != nil {
		return nil, GetDependenciesOutput{}, err
	}
	if len(input.Entrypoints) == 0 {
		return nil, GetDependenciesOutput{}, errors.New("entrypoints is required")
	}
	return nil, GetDependenciesOutput{Paths: graph.Dependencies(edges, input.Entrypoints)}, nil
}

// GetReferences answers the reverse transitive-closure query.
func (s *GraphService) GetReferences(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetReferencesInput,
) (*mcp.CallToolResult, GetReferencesOutput, error) {
	edges, err := s.edges()
	if err != nil {
		return nil, GetReferencesOutput{}, err
	}
	if len(input.Entrypoints) == 0 {
		return nil, GetReferencesOutput{}, errors.New("entrypoints is required")
	}
	return nil, GetReferencesOutput{Paths: graph.References(edges, input.Entrypoints)}, nil
}

// ListMissing returns the missing map of the latest gather.
func (s *GraphService) ListMissing(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListMissingInput,
) (*mcp.CallToolResult, ListMissingOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, ListMissingOutput{}, errors.New("no graph gathered yet: call gather_graph first")
	}
	return nil, ListMissingOutput{Missing: s.result.Missing}, nil
}

// edges returns the resolved edge map of the latest gather.
func (s *GraphService) edges() (graph.EdgeMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, errors.New("no graph gathered yet: call gather_graph first")
	}
	return s.result.Resolved, nil
}
