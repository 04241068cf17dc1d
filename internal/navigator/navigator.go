// Package navigator moves a cursor or a line-wise selection across the
// headings of an outline.
//
// Every operation is a pure function of the tree and the request: nothing
// is cached between calls and the tree is never modified.
package navigator

import (
	"fmt"

	"github.com/dgallion1/orgnav/internal/outline"
)

// Navigator resolves moves against one outline tree.
type Navigator struct {
	tree *outline.Tree
}

// New returns a navigator over tree.
func New(tree *outline.Tree) *Navigator {
	return &Navigator{tree: tree}
}

// Navigate builds a fresh tree from lines and applies op to it.
func Navigate(lines []string, opts outline.Options, op Op, req Request) (Result, error) {
	c, err := opts.Classifier()
	if err != nil {
		return Result{}, err
	}
	return New(outline.Build(lines, c)).Do(op, req)
}

// Do dispatches op.
func (n *Navigator) Do(op Op, req Request) (Result, error) {
	switch op {
	case OpNext:
		return n.Next(req)
	case OpPrevious:
		return n.Previous(req)
	case OpParent:
		return n.Parent(req)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownOp, string(op))
}

// Next moves to the Count-th heading after the cursor, stopping at the last
// heading of the document.
func (n *Navigator) Next(req Request) (Result, error) {
	count := normalizeCount(req.Count)
	visual, err := isVisual(req.Selection)
	if err != nil {
		return Result{}, err
	}
	if visual {
		return n.reselect(*req.Selection, count, n.nextStep), nil
	}

	i := n.tree.After(req.Cursor.Line)
	if i == outline.None {
		return Result{}, nil
	}
	return n.cursorAt(i + min(count-1, n.tree.Len()-1-i)), nil
}

// Previous moves to the Count-th heading before the cursor, stopping at the
// first heading of the document.
func (n *Navigator) Previous(req Request) (Result, error) {
	count := normalizeCount(req.Count)
	visual, err := isVisual(req.Selection)
	if err != nil {
		return Result{}, err
	}
	if visual {
		return n.reselect(*req.Selection, count, n.previousStep), nil
	}

	i := n.tree.Before(req.Cursor.Line)
	if i == outline.None {
		return Result{}, nil
	}
	return n.cursorAt(i - min(count-1, i)), nil
}

// Parent moves up Count levels from the heading under the cursor. Asking
// for more levels than exist stops at the top-level heading, but only if
// the heading has a parent at all.
func (n *Navigator) Parent(req Request) (Result, error) {
	count := normalizeCount(req.Count)
	visual, err := isVisual(req.Selection)
	if err != nil {
		return Result{}, err
	}
	if visual {
		return n.reselectParent(*req.Selection, count), nil
	}

	cur := n.tree.At(req.Cursor.Line)
	if cur == outline.None {
		return Result{}, nil
	}
	p, steps := n.tree.Ancestor(cur, count)
	if steps == 0 {
		return Result{}, nil
	}
	return n.cursorAt(p), nil
}

func (n *Navigator) cursorAt(i int) Result {
	h := n.tree.Heading(i)
	return Result{
		Outcome: MovedCursor,
		Cursor:  &Position{Line: h.Start, Column: h.Column},
		Heading: h.Start,
	}
}

func isVisual(sel *Selection) (bool, error) {
	if sel == nil {
		return false, nil
	}
	switch sel.Mode {
	case SelectNone:
		return false, nil
	case SelectLinewise, SelectCharwise:
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", ErrInvalidSelectionMode, sel.Mode)
}
