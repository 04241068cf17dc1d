package cli

import (
	"fmt"
	"strings"

	"github.com/dgallion1/orgnav/internal/doctree"
	"github.com/dgallion1/orgnav/internal/outline"
	"github.com/spf13/cobra"
)

func newOutlineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "outline FILE",
		Aliases: []string{"tree"},
		Short:   "Print the heading tree of a file (use - for stdin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			tree, err := app.buildTree(cmd, doc)
			if err != nil {
				return err
			}
			if app.Format == "vim" {
				return writeQuickfix(cmd, args[0], tree)
			}
			return writeOut(cmd, app, doctree.FromOutline(doc.Title, tree))
		},
	}
}

// writeQuickfix prints one "file:line:col:title" entry per heading, the
// format vim's :cexpr and :lgetexpr read.
func writeQuickfix(cmd *cobra.Command, file string, tree *outline.Tree) error {
	w := cmd.OutOrStdout()
	for i, n := 0, tree.Len(); i < n; i++ {
		h := tree.Heading(i)
		indent := strings.Repeat("  ", h.Level-1)
		if _, err := fmt.Fprintf(w, "%s:%d:%d:%s%s\n", file, h.Start, h.Column, indent, h.Title); err != nil {
			return err
		}
	}
	return nil
}
