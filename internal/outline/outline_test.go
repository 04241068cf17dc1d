package outline

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Line 1 is blank, headings start at 2, 6, 10, 13, 16, 17 and 18. The level 4
// heading on line 13 sits directly below a level 2 heading.
const strictDoc = `
* Überschrift 1
Text 1

Bla bla
** Überschrift 1.1
Text 2

Bla Bla bla
** Überschrift 1.2
Text 3

**** Überschrift 1.2.1.falsch

Bla Bla bla bla
*** Überschrift 1.2.1
* Überschrift 2
* Überschrift 3
`

const indentedDoc = `
* Überschrift 1
Text 1

Bla bla
 * Überschrift 1.1
Text 2

Bla Bla bla
 * Überschrift 1.2
Text 3

   * Überschrift 1.2.1.falsch

Bla Bla bla bla
  * Überschrift 1.2.1
* Überschrift 2
* Überschrift 3
`

func build(t *testing.T, doc string, c Classifier) *Tree {
	t.Helper()
	return Build(strings.Split(doc, "\n"), c)
}

func TestBuild_HeadingStructureStrict(t *testing.T) {
	checkHeadingStructure(t, build(t, strictDoc, Strict{Marker: '*'}))
}

func TestBuild_HeadingStructureIndented(t *testing.T) {
	checkHeadingStructure(t, build(t, indentedDoc, Indented{Marker: '*', IndentWidth: 1}))
}

func checkHeadingStructure(t *testing.T, tree *Tree) {
	t.Helper()

	if got := tree.At(1); got != None {
		t.Errorf("line 1: expected no heading, got index %d", got)
	}
	if got := tree.At(-1); got != None {
		t.Errorf("line -1: expected no heading, got index %d", got)
	}

	// Far past the end clamps to the last heading.
	h := tree.Heading(tree.At(999))
	if h == nil {
		t.Fatal("line 999: expected a heading")
	}
	if h.Level != 1 {
		t.Errorf("line 999: expected level 1, got %d", h.Level)
	}
	if prev := tree.Heading(h.Prev); prev == nil || prev.Level != 1 {
		t.Errorf("line 999: expected a level 1 previous sibling, got %+v", prev)
	}
	if h.Parent != None || h.Next != None || len(h.Children) != 0 {
		t.Errorf("line 999: expected a childless last root, got %+v", h)
	}

	// First heading.
	h = tree.Heading(tree.At(2))
	if h == nil {
		t.Fatal("line 2: expected a heading")
	}
	if h.Parent != None || h.Prev != None || h.Level != 1 {
		t.Errorf("line 2: unexpected heading %+v", h)
	}
	if len(h.Children) != 2 {
		t.Fatalf("line 2: expected 2 children, got %d", len(h.Children))
	}
	c0 := tree.Heading(h.Children[0])
	c1 := tree.Heading(h.Children[1])
	if c0.Level != 2 || len(c0.Children) != 0 {
		t.Errorf("first child: expected childless level 2, got %+v", c0)
	}
	if c1.Level != 2 || len(c1.Children) != 2 {
		t.Fatalf("second child: expected level 2 with 2 children, got %+v", c1)
	}
	if lvl := tree.Heading(c1.Children[0]).Level; lvl != 4 {
		t.Errorf("grandchild 0: expected level 4, got %d", lvl)
	}
	if lvl := tree.Heading(c1.Children[1]).Level; lvl != 3 {
		t.Errorf("grandchild 1: expected level 3, got %d", lvl)
	}

	next := tree.Heading(h.Next)
	if next == nil || next.Level != 1 {
		t.Fatalf("line 2: expected a level 1 next sibling, got %+v", next)
	}
	last := tree.Heading(next.Next)
	if last == nil || last.Level != 1 || last.Parent != None {
		t.Fatalf("line 2: expected a level 1 root after the next sibling, got %+v", last)
	}
	if last.Next != None {
		t.Errorf("expected the third root to be the last one")
	}

	// The mis-leveled heading.
	h = tree.Heading(tree.At(14))
	if h.Level != 4 {
		t.Errorf("line 14: expected level 4, got %d", h.Level)
	}
	if p := tree.Heading(h.Parent); p == nil || p.Level != 2 {
		t.Errorf("line 14: expected a level 2 parent, got %+v", p)
	}
	if h.Prev != None {
		t.Errorf("line 14: expected no previous sibling")
	}
	sib := tree.Heading(h.Next)
	if sib == nil || sib.Level != 3 || sib.Prev == None {
		t.Errorf("line 14: expected a linked level 3 next sibling, got %+v", sib)
	}

	h = tree.Heading(tree.At(16))
	if h.Level != 3 || h.Prev == None {
		t.Errorf("line 16: unexpected heading %+v", h)
	}
	p := tree.Heading(h.Parent)
	if p == nil || p.Level != 2 || p.Prev == None {
		t.Errorf("line 16: unexpected parent %+v", p)
	}
	if got := tree.Heading(tree.Heading(h.Prev).Parent).Start; got != 10 {
		t.Errorf("line 16: expected the previous sibling's parent on line 10, got %d", got)
	}

	h = tree.Heading(tree.At(13))
	if got := tree.Heading(h.Parent).Start; got != 10 {
		t.Errorf("line 13: expected parent on line 10, got %d", got)
	}

	h = tree.Heading(tree.At(77))
	if h.Level != 1 {
		t.Errorf("line 77: expected level 1, got %d", h.Level)
	}
	p1 := tree.Heading(h.Prev)
	if p1 == nil || p1.Level != 1 {
		t.Fatalf("line 77: expected a level 1 previous sibling, got %+v", p1)
	}
	p2 := tree.Heading(p1.Prev)
	if p2 == nil || p2.Level != 1 {
		t.Fatalf("line 77: expected two level 1 previous siblings, got %+v", p2)
	}
	if p2.Prev != None {
		t.Errorf("line 77: expected exactly two previous siblings")
	}
}

func TestBuild_Ranges(t *testing.T) {
	tree := build(t, strictDoc+"  asdf sdf\n", Strict{Marker: '*'})
	if tree.Lines != 20 {
		t.Fatalf("expected 20 lines, got %d", tree.Lines)
	}

	want := []struct {
		level, start, end, bodyEnd, column int
		title                              string
	}{
		{1, 2, 16, 5, 3, "Überschrift 1"},
		{2, 6, 9, 9, 4, "Überschrift 1.1"},
		{2, 10, 16, 12, 4, "Überschrift 1.2"},
		{4, 13, 15, 15, 6, "Überschrift 1.2.1.falsch"},
		{3, 16, 16, 16, 5, "Überschrift 1.2.1"},
		{1, 17, 17, 17, 3, "Überschrift 2"},
		{1, 18, 20, 20, 3, "Überschrift 3"},
	}
	if tree.Len() != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), tree.Len())
	}
	for i, w := range want {
		h := tree.Headings[i]
		if h.Level != w.level || h.Start != w.start || h.End != w.end || h.BodyEnd != w.bodyEnd || h.Column != w.column {
			t.Errorf("heading %d: expected level=%d start=%d end=%d body=%d col=%d, got %+v",
				i, w.level, w.start, w.end, w.bodyEnd, w.column, h)
		}
		if h.Title != w.title {
			t.Errorf("heading %d: expected title %q, got %q", i, w.title, h.Title)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	lines := strings.Split(strictDoc, "\n")
	a := Build(lines, Strict{Marker: '*'})
	b := Build(lines, Strict{Marker: '*'})
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Tree{}, Index{})); diff != "" {
		t.Errorf("rebuilding changed the tree (-first +second):\n%s", diff)
	}
}

func TestBuild_Invariants(t *testing.T) {
	docs := map[string]string{
		"strict":   strictDoc,
		"headless": "just\ntext\n",
		"top":      "* a\n** b\n*** c\n* d",
		"jumps":    "intro\n*** deep\n* top\n**** deeper\n** mid\nbody\n*** low",
	}
	for name, doc := range docs {
		tree := build(t, doc, Strict{Marker: '*'})

		// Body ranges partition everything after the preamble.
		if tree.Len() > 0 {
			next := tree.Headings[0].Start
			for i, h := range tree.Headings {
				if h.Start != next {
					t.Errorf("%s: heading %d starts at %d, expected %d", name, i, h.Start, next)
				}
				if h.BodyEnd < h.Start {
					t.Errorf("%s: heading %d has body end %d before start %d", name, i, h.BodyEnd, h.Start)
				}
				next = h.BodyEnd + 1
			}
			if next != tree.Lines+1 {
				t.Errorf("%s: bodies end at %d, expected %d", name, next-1, tree.Lines)
			}
		}

		for i, h := range tree.Headings {
			if h.Parent == None {
				continue
			}
			p := tree.Headings[h.Parent]
			if p.Start >= h.Start || p.End < h.End {
				t.Errorf("%s: heading %d not contained in parent %+v", name, i, p)
			}
			if p.Level >= h.Level {
				t.Errorf("%s: heading %d level %d under parent level %d", name, i, h.Level, p.Level)
			}
			found := false
			for _, c := range p.Children {
				if c == i {
					found = true
				}
			}
			if !found {
				t.Errorf("%s: heading %d missing from its parent's children", name, i)
			}
		}
	}
}

func TestBuild_EmptyDocument(t *testing.T) {
	tree := Build(nil, Strict{})
	if tree.Len() != 0 || tree.Lines != 0 {
		t.Fatalf("expected an empty tree, got %+v", tree)
	}
	for _, line := range []int{-5, 0, 1, 100} {
		if got := tree.At(line); got != None {
			t.Errorf("At(%d): expected None, got %d", line, got)
		}
	}
	if got := tree.After(0); got != None {
		t.Errorf("After(0): expected None, got %d", got)
	}
	if got := tree.Before(100); got != None {
		t.Errorf("Before(100): expected None, got %d", got)
	}
}

func TestTree_AfterBefore(t *testing.T) {
	tree := build(t, strictDoc, Strict{Marker: '*'})

	if got := tree.After(0); got != 0 {
		t.Errorf("After(0): expected 0, got %d", got)
	}
	if got := tree.After(2); got != 1 {
		t.Errorf("After(2): expected 1, got %d", got)
	}
	if got := tree.After(18); got != None {
		t.Errorf("After(18): expected None, got %d", got)
	}
	if got := tree.Before(2); got != None {
		t.Errorf("Before(2): expected None, got %d", got)
	}
	if got := tree.Before(19); got != 6 {
		t.Errorf("Before(19): expected 6, got %d", got)
	}
	if got := tree.Before(13); got != 2 {
		t.Errorf("Before(13): expected 2, got %d", got)
	}
}

func TestTree_LookupsAtIntegerLimits(t *testing.T) {
	tree := build(t, strictDoc, Strict{Marker: '*'})

	if got := tree.After(math.MaxInt); got != None {
		t.Errorf("After(MaxInt): expected None, got %d", got)
	}
	if got := tree.After(math.MinInt); got != 0 {
		t.Errorf("After(MinInt): expected 0, got %d", got)
	}
	if got := tree.Before(math.MaxInt); got != 6 {
		t.Errorf("Before(MaxInt): expected 6, got %d", got)
	}
	if got := tree.Before(math.MinInt); got != None {
		t.Errorf("Before(MinInt): expected None, got %d", got)
	}
	if got := tree.At(math.MaxInt); got != 6 {
		t.Errorf("At(MaxInt): expected 6, got %d", got)
	}
	if got := tree.At(math.MinInt); got != None {
		t.Errorf("At(MinInt): expected None (line 1 is preamble), got %d", got)
	}
	if got := tree.index.At(math.MaxInt); got != 6 {
		t.Errorf("index At(MaxInt): expected 6, got %d", got)
	}
}

func TestTree_AncestorAndPath(t *testing.T) {
	tree := build(t, strictDoc, Strict{Marker: '*'})
	deep := tree.At(16)

	p, steps := tree.Ancestor(deep, 1)
	if steps != 1 || tree.Headings[p].Start != 10 {
		t.Errorf("one step: expected line 10 after 1 step, got line %d after %d", tree.Headings[p].Start, steps)
	}
	p, steps = tree.Ancestor(deep, 5)
	if steps != 2 || tree.Headings[p].Start != 2 {
		t.Errorf("five steps: expected line 2 after 2 steps, got line %d after %d", tree.Headings[p].Start, steps)
	}
	if _, steps = tree.Ancestor(tree.At(2), 1); steps != 0 {
		t.Errorf("root: expected 0 steps, got %d", steps)
	}

	want := []string{"Überschrift 1", "Überschrift 1.2", "Überschrift 1.2.1"}
	if diff := cmp.Diff(want, tree.Path(deep)); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Path(None); got != nil {
		t.Errorf("expected nil path for None, got %v", got)
	}
}
