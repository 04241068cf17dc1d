package outline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mark describes a line recognised as a heading.
type Mark struct {
	Level  int    // Nesting depth, 1 = top level
	Column int    // 1-based byte column of the first title character
	Title  string // Heading text without markers
}

// Classifier decides whether a single line is a heading.
type Classifier interface {
	Classify(line string) (Mark, bool)
}

// DocumentClassifier is implemented by classifiers whose answer depends on
// the surrounding lines (fenced code, setext underlines). Build prefers it
// over per-line classification when available.
type DocumentClassifier interface {
	ClassifyAll(lines []string) []Mark
}

// Mode selects how heading levels are derived.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeIndented Mode = "indented"
	ModeMarkdown Mode = "markdown"
)

// ErrUnknownMode is returned for a heading mode that is not supported.
var ErrUnknownMode = errors.New("unknown heading mode")

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeStrict, nil
	case ModeStrict, ModeIndented, ModeMarkdown:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DefaultMarker is the org-mode heading marker.
const DefaultMarker = '*'

// Options configures heading detection for one build.
type Options struct {
	Mode        Mode
	Marker      rune
	IndentWidth int
}

// DefaultOptions returns strict org-style headings.
func DefaultOptions() Options {
	return Options{Mode: ModeStrict, Marker: DefaultMarker, IndentWidth: 1}
}

// Classifier returns the classifier selected by the options.
func (o Options) Classifier() (Classifier, error) {
	marker := o.Marker
	if marker == 0 {
		marker = DefaultMarker
	}
	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeIndented:
		return Indented{Marker: marker, IndentWidth: o.IndentWidth}, nil
	case ModeMarkdown:
		return Markdown{}, nil
	default:
		return Strict{Marker: marker}, nil
	}
}

// Strict recognises headings made of repeated markers at the start of the
// line: "** Title" is a level 2 heading.
type Strict struct {
	Marker rune
}

func (s Strict) Classify(line string) (Mark, bool) {
	marker := s.Marker
	if marker == 0 {
		marker = DefaultMarker
	}
	level := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r != marker {
			break
		}
		level++
		i += size
	}
	if level == 0 || i >= len(line) || !isSeparator(line[i]) {
		return Mark{}, false
	}
	return newMark(level, line, i+1), true
}

// Indented recognises a single marker preceded by indentation, where the
// indentation depth encodes the level:
//
//	* Title        level 1
//	 * Child       level 2
type Indented struct {
	Marker      rune
	IndentWidth int // columns per level; a tab counts as one full level
}

func (c Indented) Classify(line string) (Mark, bool) {
	marker := c.Marker
	if marker == 0 {
		marker = DefaultMarker
	}
	width := c.IndentWidth
	if width <= 0 {
		width = 1
	}

	cols := 0
	i := 0
	for i < len(line) && isSeparator(line[i]) {
		if line[i] == '\t' {
			cols += width
		} else {
			cols++
		}
		i++
	}

	r, size := utf8.DecodeRuneInString(line[i:])
	if r != marker {
		return Mark{}, false
	}
	i += size
	if i >= len(line) || !isSeparator(line[i]) {
		return Mark{}, false
	}
	return newMark(cols/width+1, line, i+1), true
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '\t'
}

// newMark builds a mark whose title starts after the separator at byte
// offset rest, skipping any further blanks.
func newMark(level int, line string, rest int) Mark {
	for rest < len(line) && isSeparator(line[rest]) {
		rest++
	}
	return Mark{
		Level:  level,
		Column: rest + 1,
		Title:  strings.TrimSpace(line[rest:]),
	}
}

// classifyLines runs c over every line. A zero Level means "not a heading".
func classifyLines(lines []string, c Classifier) []Mark {
	if dc, ok := c.(DocumentClassifier); ok {
		return dc.ClassifyAll(lines)
	}
	marks := make([]Mark, len(lines))
	for i, line := range lines {
		if m, ok := c.Classify(line); ok {
			marks[i] = m
		}
	}
	return marks
}
