package navigator

import "github.com/dgallion1/orgnav/internal/outline"

// span is a whole-line selection and the end the cursor sits on.
type span struct {
	start, end int
	active     Side
}

func (s span) cursor() int {
	if s.active == SideEnd {
		return s.end
	}
	return s.start
}

func (s span) sameLines(o span) bool {
	return s.start == o.start && s.end == o.end
}

// stepFunc moves a selection by one heading and reports the heading it
// resolved to (outline.None when the move ran off the document).
type stepFunc func(span) (span, int)

// spanOf normalises a host selection into ordered, in-range lines.
func (n *Navigator) spanOf(sel Selection) span {
	s := span{start: sel.Start.Line, end: sel.End.Line, active: sel.Active}
	if s.start > s.end {
		s.start, s.end = s.end, s.start
		if s.active == SideStart {
			s.active = SideEnd
		} else {
			s.active = SideStart
		}
	}
	s.start = clamp(s.start, 1, n.tree.Lines)
	s.end = clamp(s.end, 1, n.tree.Lines)
	return s
}

// reselect applies step up to count times. The first step that leaves the
// selected lines unchanged ends the repetition.
func (n *Navigator) reselect(sel Selection, count int, step stepFunc) Result {
	if n.tree.Lines == 0 {
		return Result{}
	}
	cur := n.spanOf(sel)
	target := outline.None
	moved := false
	for i := 0; i < count; i++ {
		next, t := step(cur)
		if next.sameLines(cur) {
			break
		}
		cur, target, moved = next, t, true
	}
	if !moved {
		return Result{}
	}
	return n.selectionResult(cur, target)
}

// nextStep extends the selection towards the next heading boundary. With
// the cursor on the first line it moves to the next heading start, crossing
// over the anchor to that heading's body end if needed; with the cursor on
// the last line it moves to the end of the following section.
func (n *Navigator) nextStep(s span) (span, int) {
	if s.active == SideStart {
		t := n.tree.After(s.start)
		if t == outline.None {
			return span{s.end, n.tree.Lines, SideEnd}, outline.None
		}
		h := n.tree.Heading(t)
		if h.Start <= s.end {
			return span{h.Start, s.end, SideStart}, t
		}
		return span{s.end, h.BodyEnd, SideEnd}, t
	}

	t := n.tree.After(s.end)
	if t == outline.None {
		return span{s.start, n.tree.Lines, SideEnd}, outline.None
	}
	h := n.tree.Heading(t)
	if h.Start-1 > s.end {
		return span{s.start, h.Start - 1, SideEnd}, n.tree.At(h.Start - 1)
	}
	return span{s.start, h.BodyEnd, SideEnd}, t
}

// previousStep is the mirror of nextStep.
func (n *Navigator) previousStep(s span) (span, int) {
	if s.active == SideStart {
		t := n.tree.Before(s.start)
		if t == outline.None {
			return span{1, s.end, SideStart}, outline.None
		}
		return span{n.tree.Heading(t).Start, s.end, SideStart}, t
	}

	cur := n.tree.At(s.end)
	if cur == outline.None || n.tree.Heading(cur).Start <= 1 {
		return span{1, s.start, SideStart}, outline.None
	}
	boundary := n.tree.Heading(cur).Start - 1
	owner := n.tree.At(boundary)
	if boundary >= s.start {
		return span{s.start, boundary, SideEnd}, owner
	}
	if owner == outline.None {
		return span{1, s.start, SideStart}, outline.None
	}
	return span{n.tree.Heading(owner).Start, s.start, SideStart}, owner
}

// reselectParent moves the cursor end of the selection to an ancestor of
// the heading under the cursor.
func (n *Navigator) reselectParent(sel Selection, count int) Result {
	if n.tree.Lines == 0 {
		return Result{}
	}
	s := n.spanOf(sel)
	cur := n.tree.At(s.cursor())
	if cur == outline.None {
		return Result{}
	}
	p, steps := n.tree.Ancestor(cur, count)
	if steps == 0 {
		return Result{}
	}

	start := n.tree.Heading(p).Start
	var next span
	switch {
	case s.active == SideStart:
		next = span{start, s.end, SideStart}
	case start >= s.start:
		next = span{s.start, start, SideEnd}
	default:
		next = span{start, s.start, SideStart}
	}
	if next.sameLines(s) {
		return Result{}
	}
	return n.selectionResult(next, p)
}

func (n *Navigator) selectionResult(s span, target int) Result {
	r := Result{
		Outcome: Reselected,
		Selection: &LineRange{
			Start:         s.start,
			End:           s.end,
			CursorAtStart: s.active == SideStart,
		},
	}
	if h := n.tree.Heading(target); h != nil {
		r.Heading = h.Start
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
