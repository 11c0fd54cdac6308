package directive

import (
	"errors"
	"strings"
	"testing"
)

func TestScan_SingleLine(t *testing.T) {
	content := "import x from './x';\n// <crosslink depends-on=\"./theme.css\" />\nconst a = 1;\n"
	s := NewScanner(LineComments)

	got, err := s.Scan("a.ts", []byte(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("directives = %d, want 1", len(got))
	}
	if got[0].Attrs[DependsOn] != "./theme.css" {
		t.Errorf("depends-on = %q, want %q", got[0].Attrs[DependsOn], "./theme.css")
	}
	if got[0].Line != 2 || got[0].Col != 4 {
		t.Errorf("position = %d:%d, want 2:4", got[0].Line, got[0].Col)
	}
}

func TestScan_MultiLineEqualsSingleLine(t *testing.T) {
	single := "// <crosslink depends-on=\"./icons.css\" />\n"
	multi := "// <crosslink\n//   depends-on=\"./icons.css\" />\n"
	s := NewScanner(LineComments)

	fromSingle, err := s.Scan("a.ts", []byte(single))
	if err != nil {
		t.Fatalf("single-line: %v", err)
	}
	fromMulti, err := s.Scan("a.ts", []byte(multi))
	if err != nil {
		t.Fatalf("multi-line: %v", err)
	}

	if len(fromSingle) != 1 || len(fromMulti) != 1 {
		t.Fatalf("directive counts = %d, %d, want 1, 1", len(fromSingle), len(fromMulti))
	}
	if fromSingle[0].Attrs[DependsOn] != fromMulti[0].Attrs[DependsOn] {
		t.Errorf("multi-line value %q differs from single-line %q",
			fromMulti[0].Attrs[DependsOn], fromSingle[0].Attrs[DependsOn])
	}
}

func TestScan_BlockComments(t *testing.T) {
	content := "body { color: red; }\n/* <crosslink depends-on=\"./reset.css\" /> */\n"
	s := NewScanner(BlockComments)

	got, err := s.Scan("a.css", []byte(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 || got[0].Attrs[DependsOn] != "./reset.css" {
		t.Fatalf("directives = %+v, want one depends-on=./reset.css", got)
	}
}

func TestScan_MultipleDirectives(t *testing.T) {
	content := strings.Join([]string{
		"// <crosslink depends-on=\"./a.css\" />",
		"code();",
		"// <crosslink depends-on=\"./b.css\" />",
		"",
	}, "\n")
	s := NewScanner(LineComments)

	got, err := s.Scan("a.ts", []byte(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("directives = %d, want 2", len(got))
	}
	if got[0].Attrs[DependsOn] != "./a.css" || got[1].Attrs[DependsOn] != "./b.css" {
		t.Errorf("values = %q, %q", got[0].Attrs[DependsOn], got[1].Attrs[DependsOn])
	}
}

func TestScan_UnknownAttribute(t *testing.T) {
	content := "// <crosslink data-id=\"x\" />\n"
	s := NewScanner(LineComments)

	_, err := s.Scan("a.ts", []byte(content))
	var dirErr *Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if dirErr.Kind != ErrValidation {
		t.Errorf("kind = %s, want validation", dirErr.Kind)
	}
	if !strings.Contains(dirErr.Msg, "data-id") {
		t.Errorf("message %q does not name the offending attribute", dirErr.Msg)
	}
	if dirErr.Line != 1 || dirErr.Col != 15 {
		t.Errorf("position = %d:%d, want 1:15", dirErr.Line, dirErr.Col)
	}
}

func TestScan_Unterminated(t *testing.T) {
	content := "// <crosslink depends-on=\"x\"\nconst a = 1;\n"
	s := NewScanner(LineComments)

	_, err := s.Scan("a.ts", []byte(content))
	var dirErr *Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if dirErr.Kind != ErrSyntax {
		t.Errorf("kind = %s, want syntax", dirErr.Kind)
	}
	if dirErr.Line != 1 || dirErr.Col != 1 {
		t.Errorf("position = %d:%d, want 1:1", dirErr.Line, dirErr.Col)
	}
}

func TestScan_CaseNormalizedAttribute(t *testing.T) {
	content := "// <crosslink DEPENDS-ON=\"./a.css\" />\n"
	s := NewScanner(LineComments)

	got, err := s.Scan("a.ts", []byte(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 || got[0].Attrs[DependsOn] != "./a.css" {
		t.Fatalf("directives = %+v, want normalized depends-on", got)
	}
}

func TestScan_NoDirectives(t *testing.T) {
	content := "// ordinary comment\n// <custom-element> in prose\ncode();\n"
	s := NewScanner(LineComments)

	got, err := s.Scan("a.ts", []byte(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("directives = %+v, want none", got)
	}
}

func TestError_RendersCaret(t *testing.T) {
	content := "// <crosslink data-id=\"x\" />\n"
	s := NewScanner(LineComments)

	_, err := s.Scan("a.ts", []byte(content))
	if err == nil {
		t.Fatal("expected error")
	}

	rendered := err.Error()
	if !strings.Contains(rendered, "a.ts:1:15") {
		t.Errorf("rendered error lacks position: %q", rendered)
	}
	lines := strings.Split(rendered, "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered error has %d lines, want 3:\n%s", len(lines), rendered)
	}
	caret := strings.Index(lines[2], "^")
	if caret != 2+14 { // two-space indent plus column 15
		t.Errorf("caret at %d, want %d:\n%s", caret, 16, rendered)
	}
}
