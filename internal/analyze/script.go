package analyze

import (
	"context"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// scriptKinds are the extensions the script analyzer owns. The TypeScript
// grammar is a superset of JavaScript, so one grammar covers all of them.
var scriptKinds = []string{"ts", "tsx", "js", "jsx", "mjs", "cjs"}

// IsScriptPath reports whether path belongs to one of the script kinds.
func IsScriptPath(path string) bool {
	return matchesAny(path, scriptKinds)
}

// ScriptAnalyzer extracts module specifiers from script files using the
// tree-sitter TypeScript grammar: static imports, re-exports, dynamic
// import() calls and CommonJS require() calls.
type ScriptAnalyzer struct {
	lang *tree_sitter.Language
}

var _ Analyzer = (*ScriptAnalyzer)(nil)

// NewScriptAnalyzer creates a ScriptAnalyzer with the TypeScript grammar
// loaded.
func NewScriptAnalyzer() *ScriptAnalyzer {
	return &ScriptAnalyzer{
		lang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	}
}

// Match accepts any script-kind file.
func (a *ScriptAnalyzer) Match(path string) bool {
	return matchesAny(path, scriptKinds)
}

// Kinds returns the script extensions, driving file discovery.
func (a *ScriptAnalyzer) Kinds() []string {
	return scriptKinds
}

// Process parses the file and collects every import specifier.
func (a *ScriptAnalyzer) Process(_ context.Context, file File, _ Runtime) ([]string, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(a.lang); err != nil {
		return nil, fmt.Errorf("script: set language: %w", err)
	}

	tree := parser.Parse(file.Contents, nil)
	if tree == nil {
		return nil, fmt.Errorf("script: tree-sitter returned nil tree for %s", file.Path)
	}
	defer tree.Close()

	var refs []string
	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	a.walk(cursor, file.Contents, &refs)
	return refs, nil
}

func (a *ScriptAnalyzer) walk(cursor *tree_sitter.TreeCursor, source []byte, refs *[]string) {
	node := cursor.Node()

	switch node.Kind() {
	case "import_statement", "export_statement":
		if spec := specifierFromSource(node, source); spec != "" {
			*refs = append(*refs, spec)
		}
	case "call_expression":
		if spec := specifierFromCall(node, source); spec != "" {
			*refs = append(*refs, spec)
		}
	}

	if cursor.GotoFirstChild() {
		a.walk(cursor, source, refs)
		for cursor.GotoNextSibling() {
			a.walk(cursor, source, refs)
		}
		cursor.GotoParent()
	}
}

// specifierFromSource reads the "source" field of an import or export
// statement. Exports without a from-clause have no source and yield "".
func specifierFromSource(node *tree_sitter.Node, source []byte) string {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return ""
	}
	return strings.Trim(sourceNode.Utf8Text(source), "\"'`")
}

// specifierFromCall handles require("x") and dynamic import("x"). Only
// string-literal arguments are extracted; computed specifiers are invisible
// to static analysis.
func specifierFromCall(node *tree_sitter.Node, source []byte) string {
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return ""
	}

	switch fnNode.Kind() {
	case "identifier":
		if fnNode.Utf8Text(source) != "require" {
			return ""
		}
	case "import":
		// dynamic import()
	default:
		return ""
	}

	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil {
		return ""
	}
	for i := uint(0); i < argsNode.ChildCount(); i++ {
		child := argsNode.Child(i)
		if child != nil && child.Kind() == "string" {
			return strings.Trim(child.Utf8Text(source), "\"'`")
		}
	}
	return ""
}
