package cli

import (
	"fmt"

	"github.com/dgallion1/orgnav/internal/navigator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type moveFlags struct {
	line, col, count int
	visual           string
	start, end       int
	active           string
}

func newMoveCmd(app *App, op navigator.Op, short string, aliases []string) *cobra.Command {
	var f moveFlags

	cmd := &cobra.Command{
		Use:     string(op) + " FILE",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd.Flags())
			if err != nil {
				return err
			}
			doc, err := app.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			tree, err := app.buildTree(cmd, doc)
			if err != nil {
				return err
			}

			res, err := navigator.New(tree).Do(op, req)
			if err != nil {
				return err
			}
			app.log.Debug("navigated", "op", op, "outcome", res.Outcome, "heading", res.Heading)

			if app.Format == "vim" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), vimCommand(res))
				return err
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().IntVar(&f.line, "line", 1, "Cursor line (1-based)")
	cmd.Flags().IntVar(&f.col, "col", 1, "Cursor column (1-based)")
	cmd.Flags().IntVarP(&f.count, "count", "c", 1, "Repeat the move this many times")
	cmd.Flags().StringVar(&f.visual, "visual", "", "Selection mode (V|v|linewise|charwise|blockwise); empty moves the cursor")
	cmd.Flags().IntVar(&f.start, "start", 0, "First selected line (default --line)")
	cmd.Flags().IntVar(&f.end, "end", 0, "Last selected line (default --line)")
	cmd.Flags().StringVar(&f.active, "active", "end", "Selection end holding the cursor (start|end)")

	return cmd
}

// request builds the navigation request. Selection endpoints not given on
// the command line default to --line.
func (f moveFlags) request(flags *pflag.FlagSet) (navigator.Request, error) {
	req := navigator.Request{
		Cursor: navigator.Position{Line: f.line, Column: f.col},
		Count:  f.count,
	}

	mode, err := navigator.ParseSelectionMode(f.visual)
	if err != nil {
		return req, err
	}
	if mode == navigator.SelectNone {
		return req, nil
	}

	var active navigator.Side
	if err := active.UnmarshalText([]byte(f.active)); err != nil {
		return req, err
	}
	start, end := f.start, f.end
	if !flags.Changed("start") {
		start = f.line
	}
	if !flags.Changed("end") {
		end = f.line
	}
	req.Selection = &navigator.Selection{
		Mode:   mode,
		Start:  navigator.Position{Line: start, Column: 1},
		End:    navigator.Position{Line: end, Column: 1},
		Active: active,
	}
	return req, nil
}

// vimCommand renders a result as an Ex command. No target renders as an
// empty line so callers can execute the output unconditionally.
func vimCommand(res navigator.Result) string {
	switch {
	case res.Cursor != nil:
		return fmt.Sprintf("call cursor(%d, %d)", res.Cursor.Line, res.Cursor.Column)
	case res.Selection != nil:
		cmd := fmt.Sprintf("normal %dggV%dgg", res.Selection.Start, res.Selection.End)
		if res.Selection.CursorAtStart {
			cmd += "o"
		}
		return cmd
	}
	return ""
}
