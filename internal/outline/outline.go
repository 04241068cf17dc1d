// Package outline turns a flat sequence of lines into a tree of headings.
//
// Headings are stored in an arena (Tree.Headings) in document order and
// refer to each other by index, so a Tree is self-contained and can be
// discarded as a whole.
package outline

// None marks an absent parent, child or sibling.
const None = -1

// Heading is one heading and the block of lines it owns.
type Heading struct {
	Level   int    // Declared nesting depth, 1 = top level
	Start   int    // 1-based line of the heading itself
	End     int    // Last line of the heading including all descendants
	BodyEnd int    // Last line before the next heading of any level
	Column  int    // 1-based column where the title starts
	Title   string // Heading text without markers

	Parent   int   // Index of the enclosing heading, or None
	Children []int // Indices of immediate children, in document order
	Prev     int   // Previous entry in the parent's children, or None
	Next     int   // Next entry in the parent's children, or None
}

// Tree is the outline of one document snapshot.
type Tree struct {
	Headings []Heading // Document order; also pre-order
	Roots    []int     // Indices of top-level headings
	Lines    int       // Number of lines in the document

	index Index
}

// Build parses lines into a Tree. It never fails: headings that skip levels
// attach to the nearest preceding heading with a smaller level.
func Build(lines []string, c Classifier) *Tree {
	marks := classifyLines(lines, c)
	t := &Tree{Lines: len(lines)}

	// Stack of open headings, levels strictly increasing from bottom to top.
	var stack []int
	last := None

	for i, m := range marks {
		if m.Level <= 0 {
			continue
		}
		line := i + 1

		if last != None {
			t.Headings[last].BodyEnd = line - 1
		}
		for len(stack) > 0 && t.Headings[stack[len(stack)-1]].Level >= m.Level {
			t.Headings[stack[len(stack)-1]].End = line - 1
			stack = stack[:len(stack)-1]
		}

		parent := None
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		idx := len(t.Headings)
		t.Headings = append(t.Headings, Heading{
			Level:  m.Level,
			Start:  line,
			Column: m.Column,
			Title:  m.Title,
			Parent: parent,
			Prev:   None,
			Next:   None,
		})
		if parent == None {
			t.Roots = append(t.Roots, idx)
		} else {
			t.Headings[parent].Children = append(t.Headings[parent].Children, idx)
		}

		stack = append(stack, idx)
		last = idx
	}

	for _, idx := range stack {
		t.Headings[idx].End = t.Lines
	}
	if last != None {
		t.Headings[last].BodyEnd = t.Lines
	}

	t.linkSiblings(t.Roots)
	for i := range t.Headings {
		t.linkSiblings(t.Headings[i].Children)
	}
	t.index = newIndex(t.Headings)
	return t
}

func (t *Tree) linkSiblings(list []int) {
	for k, idx := range list {
		if k > 0 {
			t.Headings[idx].Prev = list[k-1]
		}
		if k+1 < len(list) {
			t.Headings[idx].Next = list[k+1]
		}
	}
}

// Len returns the number of headings.
func (t *Tree) Len() int {
	return len(t.Headings)
}

// Heading returns the heading at index i, or nil for None or an index out
// of range.
func (t *Tree) Heading(i int) *Heading {
	if i < 0 || i >= len(t.Headings) {
		return nil
	}
	return &t.Headings[i]
}

// At returns the index of the innermost heading containing line, or None
// when the line precedes the first heading. Lines outside the document are
// clamped to its first or last line, so a line below 1 resolves like line 1
// and is None when the document opens with preamble.
func (t *Tree) At(line int) int {
	if t.Lines == 0 {
		return None
	}
	if line < 1 {
		line = 1
	}
	if line > t.Lines {
		line = t.Lines
	}
	return t.index.At(line)
}

// After returns the index of the first heading starting after line, or None.
func (t *Tree) After(line int) int {
	return t.index.After(line)
}

// Before returns the index of the last heading starting before line, or None.
func (t *Tree) Before(line int) int {
	return t.index.Before(line)
}

// Ancestor walks up to n parents from i. It stops at the top-level heading
// and reports how many steps were taken.
func (t *Tree) Ancestor(i, n int) (int, int) {
	steps := 0
	for steps < n {
		h := t.Heading(i)
		if h == nil || h.Parent == None {
			break
		}
		i = h.Parent
		steps++
	}
	return i, steps
}

// Path returns the titles from the top-level ancestor down to heading i.
func (t *Tree) Path(i int) []string {
	var path []string
	for h := t.Heading(i); h != nil; h = t.Heading(h.Parent) {
		path = append(path, h.Title)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
