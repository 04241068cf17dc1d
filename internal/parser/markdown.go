package parser

import (
	"io"

	"github.com/dgallion1/orgnav/internal/doctree"
	"github.com/dgallion1/orgnav/internal/outline"
)

// MarkdownParser handles Markdown files. Lines are kept verbatim and
// outlined with markdown heading rules.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	doc := &doctree.Document{
		Title:   baseTitle(filename),
		Lines:   lines,
		Options: &outline.Options{Mode: outline.ModeMarkdown},
	}

	// The first top-level heading names the document.
	for _, m := range (outline.Markdown{}).ClassifyAll(lines) {
		if m.Level == 1 && m.Title != "" {
			doc.Title = m.Title
			break
		}
	}
	return doc, nil
}
