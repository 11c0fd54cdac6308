// Package directive implements the in-source annotation language: a
// self-closing <crosslink/> element embedded in comments, declaring
// dependencies that structural analysis cannot infer.
//
// The element has exactly one recognized attribute:
//
//	// <crosslink depends-on="./theme.css" />
//
// A directive may span several physical lines when every following line is
// prefixed with the comment style's continuation token:
//
//	// <crosslink
//	//   depends-on="./icons/*.svg" />
package directive

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Tag is the recognized element name. DependsOn is its single legal
// attribute. Both are part of the on-disk annotation format and must not
// change.
const (
	Tag       = "crosslink"
	DependsOn = "depends-on"
)

// CommentStyle configures where a directive may appear for one file kind:
// Start matches the token opening a directive comment, Continuation matches
// the prefix carried by subsequent physical lines of a multi-line element.
// Both are regular expression sources.
type CommentStyle struct {
	Start        string
	Continuation string
}

// LineComments is the style for languages with // comments.
var LineComments = CommentStyle{
	Start:        `//[ \t]*`,
	Continuation: `//[ \t]*`,
}

// BlockComments is the style for languages with /* */ comments; the
// continuation token tolerates the conventional leading asterisk.
var BlockComments = CommentStyle{
	Start:        `/\*[ \t]*`,
	Continuation: `[ \t]*\*?[ \t]*`,
}

// Directive is one validated annotation instance. Attrs holds the element's
// attributes with case-normalized names; Line and Col locate the element
// start in the scanned content (1-based).
type Directive struct {
	Attrs map[string]string
	Line  int
	Col   int
}

// Scanner finds and validates directives in file content. A Scanner is
// immutable and safe for concurrent use.
type Scanner struct {
	full *regexp.Regexp // well-formed element, anchored
	open *regexp.Regexp // recognizable opening, anchored or not
	cont *regexp.Regexp // newline + continuation prefix, for body rejoining
}

// NewScanner compiles a Scanner for one comment style.
func NewScanner(style CommentStyle) *Scanner {
	// A well-formed body runs to the closing "/>" and may break onto
	// further lines only when each break is followed by the continuation
	// token.
	body := `(?:[^>\n]|\n` + style.Continuation + `)*?`
	return &Scanner{
		full: regexp.MustCompile(`^` + style.Start + `<` + Tag + `\b` + body + `/>`),
		open: regexp.MustCompile(style.Start + `<` + Tag + `\b`),
		cont: regexp.MustCompile(`\n` + style.Continuation),
	}
}

// Scan walks content and returns every directive found, in order. The first
// syntax, parse, or validation problem aborts the scan with a *Error.
func (s *Scanner) Scan(path string, content []byte) ([]Directive, error) {
	text := string(content)
	var out []Directive

	pos := 0
	for pos < len(text) {
		loc := s.open.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]

		span := s.full.FindString(text[start:])
		if span == "" {
			return nil, newError(ErrSyntax, path, text, start,
				"unterminated <%s> element: expected self-closing \"/>\"", Tag)
		}

		d, err := s.parse(path, text, start, span)
		if err != nil {
			return nil, err
		}
		out = append(out, d)

		pos = start + len(span)
		pos += trailingBlank(text[pos:])
	}

	return out, nil
}

// parse isolates the element fragment from a matched span, rejoins
// multi-line bodies, tokenizes it as markup, and validates attributes.
func (s *Scanner) parse(path, text string, start int, span string) (Directive, error) {
	elemOff := start + strings.Index(span, "<")
	fragment := span[strings.Index(span, "<"):]
	fragment = s.cont.ReplaceAllString(fragment, " ")

	z := html.NewTokenizer(strings.NewReader(fragment))
	tt := z.Next()
	if tt == html.ErrorToken {
		return Directive{}, newError(ErrParse, path, text, elemOff,
			"cannot parse <%s> element: %v", Tag, z.Err())
	}

	tok := z.Token()
	if (tok.Type != html.SelfClosingTagToken && tok.Type != html.StartTagToken) || tok.Data != Tag {
		return Directive{}, newError(ErrParse, path, text, elemOff,
			"expected a self-closing <%s> element, got %q", Tag, fragment)
	}

	attrs := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		key := strings.ToLower(a.Key)
		if key != DependsOn {
			return Directive{}, newError(ErrValidation, path, text, attrOffset(text, start, span, a.Key),
				"unknown attribute %q: only %q is recognized", a.Key, DependsOn)
		}
		attrs[key] = a.Val
	}

	line, col := position(text, elemOff)
	return Directive{Attrs: attrs, Line: line, Col: col}, nil
}

// attrOffset locates an attribute name inside the raw matched span so
// validation errors point at the offending key rather than the element.
func attrOffset(text string, start int, span, key string) int {
	idx := strings.Index(strings.ToLower(span), strings.ToLower(key))
	if idx < 0 {
		return start
	}
	return start + idx
}

// trailingBlank measures the run of blank lines immediately following a
// matched span, which the cursor skips over.
func trailingBlank(rest string) int {
	n := 0
	for n < len(rest) {
		lineEnd := strings.IndexByte(rest[n:], '\n')
		if lineEnd < 0 {
			break
		}
		if strings.TrimSpace(rest[n:n+lineEnd]) != "" {
			break
		}
		n += lineEnd + 1
	}
	return n
}
