package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crosslink-tools/crosslink/internal/analyze"
	"github.com/crosslink-tools/crosslink/internal/builder"
	"github.com/crosslink-tools/crosslink/internal/config"
	"github.com/crosslink-tools/crosslink/internal/discover"
	"github.com/crosslink-tools/crosslink/internal/export"
	"github.com/crosslink-tools/crosslink/internal/graph"
	"github.com/crosslink-tools/crosslink/internal/mcptools"
	"github.com/crosslink-tools/crosslink/internal/resolve"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	BatchSize   int
	Deps        string
	Refs        string
	Format      string
	Persist     bool
	ServeMCP    bool
	Addr        string
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("crosslink", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the target project")
	fs.IntVar(&flags.BatchSize, "batch", 0, "number of files processed concurrently (overrides config)")
	fs.StringVar(&flags.Deps, "deps", "", "comma-separated entrypoints: print their transitive dependencies")
	fs.StringVar(&flags.Refs, "refs", "", "comma-separated entrypoints: print what depends on them")
	fs.StringVar(&flags.Format, "format", "stats", "output format: stats, json, mermaid")
	fs.BoolVar(&flags.Persist, "persist", false, "persist the graph into the configured KuzuDB")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server exposing graph tools")
	fs.StringVar(&flags.Addr, "addr", "localhost:8123", "MCP server listen address")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyDefaults(cfg, &flags)

	logger := newLogger(flags.Verbose || cfg.Verbose)
	b, err := newBuilder(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.ServeMCP {
		svc := mcptools.NewGraphService(b)
		logger.Info("serving MCP", "addr", flags.Addr)
		return mcptools.RunMCPServer(ctx, svc, flags.Addr)
	}

	result, err := b.Gather(ctx, builder.GatherOptions{BatchSize: cfg.BatchSize})
	if err != nil {
		return err
	}

	if flags.Persist {
		if err := persistGraph(ctx, cfg.GraphDB, result); err != nil {
			return err
		}
	}

	switch {
	case flags.Deps != "":
		printPaths(graph.Dependencies(result.Resolved, splitList(flags.Deps)))
		return nil
	case flags.Refs != "":
		printPaths(graph.References(result.Resolved, splitList(flags.Refs)))
		return nil
	}

	return output(result, flags.Format)
}

// applyDefaults folds flag overrides and fallback values into cfg.
func applyDefaults(cfg *config.ProjectConfig, flags *cliFlags) {
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{flags.ProjectRoot}
	}
	if flags.BatchSize > 0 {
		cfg.BatchSize = flags.BatchSize
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 8
	}
}

// newBuilder wires the full analyzer registry, resolver stack, and alias
// transform from project configuration.
func newBuilder(cfg *config.ProjectConfig, logger *slog.Logger) (*builder.Builder, error) {
	var resolver resolve.Resolver = &resolve.NodeResolver{ModulesDir: cfg.ModulesDir}
	if cfg.CacheDir != "" {
		resolver = resolve.NewCachedResolver(resolver, cfg.CacheDir, version)
	}

	return builder.New(builder.Config{
		Roots: cfg.Roots,
		Analyzers: []analyze.Analyzer{
			analyze.NewScriptAnalyzer(),
			analyze.NewStyleAnalyzer(),
			analyze.NewBehaviorAnalyzer(),
			analyze.NewScriptDirectives(),
			analyze.NewStyleDirectives(),
		},
		Resolver: resolver,
		Discoverer: &discover.FSDiscoverer{
			ExcludeDirs:  cfg.ExcludeDirs,
			ExcludeGlobs: cfg.ExcludeGlobs,
		},
		Transform: aliasTransform(cfg.Aliases),
		Logger:    logger,
	})
}

// aliasTransform builds the reference-transform hook from configured alias
// prefixes. Without aliases it is the identity.
func aliasTransform(aliases map[string]string) builder.TransformFunc {
	if len(aliases) == 0 {
		return nil
	}
	return func(ref, _ string) []string {
		for prefix, replacement := range aliases {
			if strings.HasPrefix(ref, prefix) {
				return []string{replacement + strings.TrimPrefix(ref, prefix)}
			}
		}
		return []string{ref}
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func output(result *graph.Result, format string) error {
	switch format {
	case "stats":
		stats := result.Stats()
		fmt.Printf("files: %d\nedges: %d\nmissing: %d\n",
			stats.FileCount, stats.EdgeCount, stats.MissingCount)
		return nil
	case "json":
		data, err := export.GenerateJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "mermaid":
		fmt.Print(export.GenerateMermaid(result))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printPaths(paths []string) {
	for _, p := range paths {
		fmt.Println(p)
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
