package parser

import (
	"strings"

	"github.com/dgallion1/orgnav/internal/doctree"
	"github.com/dgallion1/orgnav/internal/outline"
)

// generatedOptions is the heading syntax used by parsers that synthesise
// their own heading lines.
var generatedOptions = outline.DefaultOptions()

var generatedClassifier = outline.Strict{Marker: generatedOptions.Marker}

// lineWriter emits org-style headings and blank-separated body paragraphs.
type lineWriter struct {
	lines       []string
	lastHeading bool
}

func (w *lineWriter) heading(level int, title string) {
	if level < 1 {
		level = 1
	}
	title = strings.Join(strings.Fields(title), " ")
	w.lines = append(w.lines, strings.Repeat(string(generatedOptions.Marker), level)+" "+title)
	w.lastHeading = true
}

// paragraph appends text as body lines. Lines that would read as headings
// are indented by one space.
func (w *lineWriter) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(w.lines) > 0 && !w.lastHeading {
		w.lines = append(w.lines, "")
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if _, ok := generatedClassifier.Classify(line); ok {
			line = " " + line
		}
		w.lines = append(w.lines, line)
	}
	w.lastHeading = false
}

func (w *lineWriter) document(title string) *doctree.Document {
	opts := generatedOptions
	return &doctree.Document{Title: title, Lines: w.lines, Options: &opts}
}
