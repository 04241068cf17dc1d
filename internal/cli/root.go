package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/orgnav/internal/config"
	"github.com/dgallion1/orgnav/internal/doctree"
	"github.com/dgallion1/orgnav/internal/navigator"
	"github.com/dgallion1/orgnav/internal/outline"
	"github.com/dgallion1/orgnav/internal/parser"
	"github.com/spf13/cobra"
)

var (
	errUnknownFormat = errors.New("unknown output format")
	errInvalidMarker = errors.New("marker must be a single non-space character")
)

type App struct {
	Mode        string
	Marker      string
	IndentWidth int
	Format      string
	PrettyJSON  bool
	Verbose     bool

	cfg config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:          "orgnav",
		Short:        "Outline and navigate org-style headings",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Print the heading tree of a file
  orgnav outline notes.org

  # Jump two headings forward from line 12
  orgnav next notes.org --line 12 --count 2

  # Grow a linewise selection to the parent heading, as a vim command
  orgnav parent notes.org --visual V --start 14 --end 20 --active start --format vim
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if app.Verbose {
			level = slog.LevelDebug
		}
		app.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		switch app.Format {
		case "json", "vim":
			return nil
		}
		return fmt.Errorf("%w: %q (want json or vim)", errUnknownFormat, app.Format)
	}

	cmd.PersistentFlags().StringVar(&app.Mode, "mode", app.cfg.HeadingMode, "Heading mode (strict|indented|markdown)")
	cmd.PersistentFlags().StringVar(&app.Marker, "marker", app.cfg.HeadingMarker, "Heading marker character")
	cmd.PersistentFlags().IntVar(&app.IndentWidth, "indent-width", app.cfg.IndentWidth, "Whitespace columns per level in indented mode")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ORGNAV_FORMAT", "json"), "Output format (json|vim)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newMoveCmd(app, navigator.OpNext, "Move to the next heading", []string{"n"}))
	cmd.AddCommand(newMoveCmd(app, navigator.OpPrevious, "Move to the previous heading", []string{"prev", "p"}))
	cmd.AddCommand(newMoveCmd(app, navigator.OpParent, "Move to the parent heading", []string{"up", "u"}))

	return cmd
}

// loadDocument reads path, or stdin when path is "-".
func (app *App) loadDocument(cmd *cobra.Command, path string) (*doctree.Document, error) {
	var (
		doc *doctree.Document
		err error
	)
	if path == "-" {
		doc, err = (&parser.TextParser{}).Parse(cmd.InOrStdin(), "stdin")
	} else {
		doc, err = parser.Options{PDFFallback: app.cfg.PDFFallbackPdftotext}.ParseFile(path)
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Lines) > app.cfg.MaxLines {
		return nil, fmt.Errorf("%s: %d lines exceeds the limit of %d", path, len(doc.Lines), app.cfg.MaxLines)
	}
	app.log.Debug("loaded document", "path", path, "lines", len(doc.Lines))
	return doc, nil
}

// outlineOptions resolves heading detection for doc. Flags given on the
// command line win over the syntax a parser generated.
func (app *App) outlineOptions(cmd *cobra.Command, doc *doctree.Document) (outline.Options, error) {
	opts := outline.DefaultOptions()
	if doc != nil && doc.Options != nil {
		opts = *doc.Options
	}
	flags := cmd.Flags()

	if doc == nil || doc.Options == nil || flags.Changed("mode") {
		mode, err := outline.ParseMode(app.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if doc == nil || doc.Options == nil || flags.Changed("marker") {
		r, size := utf8.DecodeRuneInString(app.Marker)
		if size == 0 || size != len(app.Marker) || unicode.IsSpace(r) {
			return opts, fmt.Errorf("%w: %q", errInvalidMarker, app.Marker)
		}
		opts.Marker = r
	}
	if doc == nil || doc.Options == nil || flags.Changed("indent-width") {
		opts.IndentWidth = app.IndentWidth
	}
	return opts, nil
}

func (app *App) buildTree(cmd *cobra.Command, doc *doctree.Document) (*outline.Tree, error) {
	opts, err := app.outlineOptions(cmd, doc)
	if err != nil {
		return nil, err
	}
	c, err := opts.Classifier()
	if err != nil {
		return nil, err
	}
	tree := outline.Build(doc.Lines, c)
	app.log.Debug("built outline", "mode", opts.Mode, "headings", tree.Len())
	return tree, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return writeJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
