package analyze

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/crosslink-tools/crosslink/internal/directive"
)

// DirectiveAnalyzer runs the annotation scanner over one family of file
// kinds, translating each directive's depends-on value into references.
// Errors from the scanner are fatal to the whole run, unlike other
// analyzer failures.
type DirectiveAnalyzer struct {
	kinds   []string
	scanner *directive.Scanner
}

var _ Analyzer = (*DirectiveAnalyzer)(nil)

// NewDirectiveAnalyzer creates a DirectiveAnalyzer for the given kinds and
// comment style. Custom file kinds register their own instance with their
// own style.
func NewDirectiveAnalyzer(kinds []string, style directive.CommentStyle) *DirectiveAnalyzer {
	return &DirectiveAnalyzer{kinds: kinds, scanner: directive.NewScanner(style)}
}

// NewScriptDirectives covers the script kinds with line-comment syntax.
func NewScriptDirectives() *DirectiveAnalyzer {
	return NewDirectiveAnalyzer(scriptKinds, directive.LineComments)
}

// NewStyleDirectives covers the style kinds with block-comment syntax.
func NewStyleDirectives() *DirectiveAnalyzer {
	return NewDirectiveAnalyzer(styleKinds, directive.BlockComments)
}

func (a *DirectiveAnalyzer) Match(path string) bool {
	return matchesAny(path, a.kinds)
}

func (a *DirectiveAnalyzer) Kinds() []string {
	return a.kinds
}

// Process scans for directives and expands each depends-on value. A value
// carrying glob metacharacters is expanded relative to the file's directory;
// zero matches leaves the raw pattern to be recorded as missing. A directive
// with an empty or absent value is a no-op.
func (a *DirectiveAnalyzer) Process(_ context.Context, file File, _ Runtime) ([]string, error) {
	directives, err := a.scanner.Scan(file.Path, file.Contents)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, d := range directives {
		value := d.Attrs[directive.DependsOn]
		if value == "" {
			continue
		}
		refs = append(refs, expand(filepath.Dir(file.Path), value)...)
	}
	return refs, nil
}

// expand turns one depends-on value into concrete references.
func expand(dir, value string) []string {
	if !isGlob(value) {
		return []string{value}
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, value))
	if err != nil || len(matches) == 0 {
		// Fall through the cascade with the raw pattern; it ends up in
		// the missing map.
		return []string{value}
	}
	return matches
}

// isGlob reports whether value contains glob metacharacters.
func isGlob(value string) bool {
	return strings.ContainsAny(value, "*?[{")
}
