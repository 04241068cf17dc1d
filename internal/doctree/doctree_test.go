package doctree

import (
	"strings"
	"testing"

	"github.com/dgallion1/orgnav/internal/outline"
	"github.com/google/go-cmp/cmp"
)

func TestFromOutline(t *testing.T) {
	lines := strings.Split("preamble\n* One\ntext\n** One.A\n**** One.A.deep\n* Two", "\n")
	tree := FromOutline("notes", outline.Build(lines, outline.Strict{Marker: '*'}))

	want := &DocTree{
		Title:    "notes",
		Lines:    6,
		Headings: 4,
		Children: []*DocNode{
			{
				Title: "One", Level: 1, Start: 2, End: 5, BodyEnd: 3,
				Path: []string{"One"},
				Children: []*DocNode{
					{
						Title: "One.A", Level: 2, Start: 4, End: 5, BodyEnd: 4,
						Path: []string{"One", "One.A"},
						Children: []*DocNode{
							{
								Title: "One.A.deep", Level: 4, Start: 5, End: 5, BodyEnd: 5,
								Path: []string{"One", "One.A", "One.A.deep"},
							},
						},
					},
				},
			},
			{Title: "Two", Level: 1, Start: 6, End: 6, BodyEnd: 6, Path: []string{"Two"}},
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOutline_NoHeadings(t *testing.T) {
	tree := FromOutline("plain", outline.Build([]string{"a", "b"}, outline.Strict{}))
	if tree.Headings != 0 || tree.Lines != 2 {
		t.Errorf("unexpected counts: %+v", tree)
	}
	if tree.Children == nil || len(tree.Children) != 0 {
		t.Errorf("expected an empty, non-nil children list, got %#v", tree.Children)
	}
}
