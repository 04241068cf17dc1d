package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextParser_LinesVerbatim(t *testing.T) {
	input := "* Heading\n  body line\n\n** Sub\r\nlast"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Options != nil {
		t.Errorf("expected no option override, got %+v", doc.Options)
	}
	want := []string{"* Heading", "  body line", "", "** Sub", "last"}
	if diff := cmp.Diff(want, doc.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("expected 0 lines for empty input, got %d", len(doc.Lines))
	}
}

func TestTextParser_TrailingNewline(t *testing.T) {
	// A final newline terminates the last line rather than starting one.
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("a\nb\n"), "two.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", doc.Lines)
	}

	doc, err = p.Parse(strings.NewReader("a\nb\n\n"), "three.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 3 || doc.Lines[2] != "" {
		t.Fatalf("expected a trailing blank line, got %q", doc.Lines)
	}
}

func TestTextParser_LongLine(t *testing.T) {
	long := "* " + strings.Repeat("x", 3<<20)
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("intro\n"+long+"\r\nend"), "big.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(doc.Lines))
	}
	if doc.Lines[1] != long || doc.Lines[2] != "end" {
		t.Errorf("long line not kept intact (len %d)", len(doc.Lines[1]))
	}
}

func TestForFile(t *testing.T) {
	tests := map[string]any{
		"a.org":      &TextParser{},
		"a.outline":  &TextParser{},
		"README":     &TextParser{},
		"a.MD":       &MarkdownParser{},
		"a.markdown": &MarkdownParser{},
		"a.csv":      &CSVParser{},
		"a.htm":      &HTMLParser{},
		"a.docx":     &DOCXParser{},
		"a.pdf":      &PDFParser{FallbackPdftotext: true},
	}
	for name, want := range tests {
		got, err := ForFile(name)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: parser mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := ForFile("image.png"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
	if p, _ := (Options{}).ForFile("a.pdf"); p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be disabled")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("x.ORG") || !IsSupportedExtension("x.markdown") {
		t.Error("expected org and markdown to be supported")
	}
	if IsSupportedExtension("x.exe") {
		t.Error("expected exe to be unsupported")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.org")
	if err := os.WriteFile(path, []byte("* Goals\nship it\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Options{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "plan" || len(doc.Lines) != 2 {
		t.Errorf("unexpected document %+v", doc)
	}

	if _, err := (Options{}).ParseFile(filepath.Join(t.TempDir(), "missing.org")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
