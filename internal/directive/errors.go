package directive

import (
	"fmt"
	"strings"
)

// ErrorKind classifies directive errors. All three kinds are fatal to the
// gather run that encountered them.
type ErrorKind string

const (
	// ErrSyntax means a directive opening was recognized but the element
	// was not properly closed.
	ErrSyntax ErrorKind = "syntax"
	// ErrParse means the isolated element fragment was rejected by the
	// markup tokenizer.
	ErrParse ErrorKind = "parse"
	// ErrValidation means the element carried an attribute other than the
	// single recognized one.
	ErrValidation ErrorKind = "validation"
)

// Error is a positioned directive error. Line and Col are 1-based and point
// into the original file content.
type Error struct {
	Kind ErrorKind
	Path string
	Line int
	Col  int
	Msg  string

	content string
}

// Error renders the error with the offending source line and a caret under
// the reported column.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s error: %s", e.Path, e.Line, e.Col, e.Kind, e.Msg)

	line := sourceLine(e.content, e.Line)
	if line != "" {
		sb.WriteString("\n  ")
		sb.WriteString(line)
		sb.WriteString("\n  ")
		sb.WriteString(strings.Repeat(" ", e.Col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// newError builds an Error positioned at byte offset off within content.
func newError(kind ErrorKind, path, content string, off int, format string, args ...any) *Error {
	line, col := position(content, off)
	return &Error{
		Kind:    kind,
		Path:    path,
		Line:    line,
		Col:     col,
		Msg:     fmt.Sprintf(format, args...),
		content: content,
	}
}

// position converts a byte offset into a 1-based line and column by counting
// newlines before the offset and measuring the trailing partial line.
func position(content string, off int) (line, col int) {
	if off > len(content) {
		off = len(content)
	}
	before := content[:off]
	line = 1 + strings.Count(before, "\n")
	lastNL := strings.LastIndexByte(before, '\n')
	col = len(before[lastNL+1:]) + 1
	return line, col
}

// sourceLine returns the n-th (1-based) line of content, without its
// trailing newline.
func sourceLine(content string, n int) string {
	lines := strings.Split(content, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
