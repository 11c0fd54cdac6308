package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewGraphMCPServer creates an MCP server with all dependency-graph tools
// registered.
func NewGraphMCPServer(svc *GraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crosslink-graph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gather_graph",
		Description: "Rebuild the file-level dependency graph for the configured roots. Discovers candidate files, runs every matching analyzer, resolves references, and returns summary stats. Unresolvable references are recorded, not fatal.",
	}, svc.GatherGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Return every file transitively depended on by the given entrypoints, excluding the entrypoints themselves. Requires a prior gather_graph call.",
	}, svc.GetDependencies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_references",
		Description: "Return every file that transitively depends on the given entrypoints, excluding the entrypoints themselves. Requires a prior gather_graph call.",
	}, svc.GetReferences)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_missing",
		Description: "Return the raw reference strings that could not be resolved to a real file in the latest gather, keyed by the referencing file.",
	}, svc.ListMissing)

	return server
}

// RunMCPServer starts an HTTP server exposing the dependency-graph MCP
// tools.
func RunMCPServer(ctx context.Context, svc *GraphService, addr string) error {
	server := NewGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
