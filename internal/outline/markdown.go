package outline

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown recognises "#" headings. Per line it only understands ATX
// headings; for a whole document it defers to goldmark so that fenced code,
// list items and setext headings are classified the way a renderer would.
type Markdown struct{}

func (Markdown) Classify(line string) (Mark, bool) {
	i := 0
	for i < len(line) && i < 3 && line[i] == ' ' {
		i++
	}
	level := 0
	for i < len(line) && line[i] == '#' {
		level++
		i++
	}
	if level == 0 || level > 6 {
		return Mark{}, false
	}
	if i < len(line) && !isSeparator(line[i]) {
		return Mark{}, false
	}
	m := newMark(level, line, i)
	m.Title = trimClosingSequence(m.Title)
	return m, true
}

// ClassifyAll parses the document once and maps every top-level goldmark
// heading back to the line it starts on.
func (Markdown) ClassifyAll(lines []string) []Mark {
	marks := make([]Mark, len(lines))
	if len(lines) == 0 {
		return marks
	}

	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}
	src := []byte(strings.Join(lines, "\n"))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	rowOf := func(offset int) int {
		return sort.SearchInts(starts, offset+1) - 1
	}

	// next is the first row not yet claimed by an earlier top-level block.
	next := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			if last := lastRow(n, rowOf); last >= next {
				next = last + 1
			}
			continue
		}
		segs := heading.Lines()
		if segs.Len() == 0 {
			// Empty headings ("#", "## ##") carry no segments; take the
			// first unclaimed row that reads as one.
			for row := next; row < len(lines); row++ {
				if m, ok := (Markdown{}).Classify(lines[row]); ok && m.Level == heading.Level && m.Title == "" {
					marks[row] = m
					next = row + 1
					break
				}
			}
			continue
		}
		first := segs.At(0)
		row := rowOf(first.Start)
		if row < 0 || row >= len(lines) {
			continue
		}
		next = row + 1

		var title strings.Builder
		for i := 0; i < segs.Len(); i++ {
			if i > 0 {
				title.WriteByte(' ')
			}
			seg := segs.At(i)
			title.WriteString(strings.TrimSpace(string(seg.Value(src))))
		}

		marks[row] = Mark{
			Level:  heading.Level,
			Column: first.Start - starts[row] + 1,
			Title:  strings.TrimSpace(title.String()),
		}
	}
	return marks
}

// lastRow returns the last row holding text of block n or its
// descendants, or -1 when none does.
func lastRow(n ast.Node, rowOf func(int) int) int {
	last := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if segs := c.Lines(); segs.Len() > 0 {
			last = max(last, rowOf(segs.At(segs.Len()-1).Start))
		}
		return ast.WalkContinue, nil
	})
	return last
}

// trimClosingSequence drops an optional closing "###" run.
func trimClosingSequence(title string) string {
	t := strings.TrimRight(title, "#")
	if t == title {
		return title
	}
	if t == "" || strings.HasSuffix(t, " ") || strings.HasSuffix(t, "\t") {
		return strings.TrimSpace(t)
	}
	return title
}
