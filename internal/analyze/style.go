package analyze

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var styleKinds = []string{"css", "scss"}

// importRe matches @import/@use at-rules with a quoted specifier, with or
// without a url() wrapper.
var importRe = regexp.MustCompile(`@(?:import|use)\s+(?:url\(\s*)?["']([^"']+)["']`)

// atRuleRe finds every @import/@use occurrence, used to detect malformed
// rules that importRe cannot consume.
var atRuleRe = regexp.MustCompile(`@(?:import|use)\b`)

// blockCommentRe strips /* ... */ spans so commented-out imports produce no
// edges.
var blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// StyleAnalyzer extracts stylesheet imports from css and scss files.
type StyleAnalyzer struct{}

var _ Analyzer = (*StyleAnalyzer)(nil)

// NewStyleAnalyzer creates a StyleAnalyzer.
func NewStyleAnalyzer() *StyleAnalyzer {
	return &StyleAnalyzer{}
}

func (a *StyleAnalyzer) Match(path string) bool {
	return matchesAny(path, styleKinds)
}

func (a *StyleAnalyzer) Kinds() []string {
	return styleKinds
}

// Process scans the stylesheet for @import and @use specifiers. Built-in
// sass modules ("sass:math") are not file references and are skipped. A
// rule whose specifier cannot be read marks the stylesheet malformed; the
// caller logs and moves on.
func (a *StyleAnalyzer) Process(_ context.Context, file File, _ Runtime) ([]string, error) {
	content := blockCommentRe.ReplaceAllString(string(file.Contents), "")

	rules := atRuleRe.FindAllStringIndex(content, -1)
	matches := importRe.FindAllStringSubmatchIndex(content, -1)

	if len(rules) > len(matches) {
		return nil, fmt.Errorf("style: malformed at-rule in %s: missing quoted specifier", file.Path)
	}

	var refs []string
	for _, m := range matches {
		spec := content[m[2]:m[3]]
		if strings.HasPrefix(spec, "sass:") {
			continue
		}
		refs = append(refs, spec)
	}
	return refs, nil
}
