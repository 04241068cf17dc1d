package doctree

import "github.com/dgallion1/orgnav/internal/outline"

// Document is a line sequence ready to be outlined.
type Document struct {
	Title string   // Document title (from metadata or filename)
	Lines []string // One entry per editor line, without line terminators

	// Options overrides the configured heading detection for formats whose
	// lines are generated rather than read verbatim. Nil means "use the
	// caller's settings".
	Options *outline.Options
}

// DocTree is the nested, serialisable view of an outline.
type DocTree struct {
	Title    string     `json:"title"`
	Lines    int        `json:"lines"`
	Headings int        `json:"headings"`
	Children []*DocNode `json:"children"`
}

// DocNode is one heading and its subheadings.
type DocNode struct {
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Start    int        `json:"start"`
	End      int        `json:"end"`
	BodyEnd  int        `json:"body_end"`
	Path     []string   `json:"path"`
	Children []*DocNode `json:"children,omitempty"`
}

// FromOutline converts an outline tree into its nested view.
func FromOutline(title string, t *outline.Tree) *DocTree {
	tree := &DocTree{
		Title:    title,
		Lines:    t.Lines,
		Headings: t.Len(),
		Children: []*DocNode{},
	}
	for _, idx := range t.Roots {
		tree.Children = append(tree.Children, newNode(t, idx))
	}
	return tree
}

func newNode(t *outline.Tree, idx int) *DocNode {
	h := t.Heading(idx)
	node := &DocNode{
		Title:   h.Title,
		Level:   h.Level,
		Start:   h.Start,
		End:     h.End,
		BodyEnd: h.BodyEnd,
		Path:    t.Path(idx),
	}
	for _, c := range h.Children {
		node.Children = append(node.Children, newNode(t, c))
	}
	return node
}
