package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/orgnav/internal/outline"
)

var errTooManyLines = errors.New("too many lines")

// documentFields are the request fields shared by the outline and navigate
// endpoints. Either Lines or Text carries the buffer; the rest override the
// configured heading detection.
type documentFields struct {
	Title       string   `json:"title,omitempty"`
	Lines       []string `json:"lines"`
	Text        *string  `json:"text,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Marker      string   `json:"marker,omitempty"`
	IndentWidth int      `json:"indent_width,omitempty"`
}

func (d documentFields) lines(max int) ([]string, error) {
	lines := d.Lines
	if d.Text != nil {
		lines = splitText(*d.Text)
	}
	if max > 0 && len(lines) > max {
		return nil, fmt.Errorf("%w: %d exceeds %d", errTooManyLines, len(lines), max)
	}
	return lines, nil
}

// options layers the request overrides on top of base.
func (d documentFields) options(base outline.Options) (outline.Options, error) {
	opts := base
	if d.Mode != "" {
		mode, err := outline.ParseMode(d.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if d.Marker != "" {
		r, size := utf8.DecodeRuneInString(d.Marker)
		if size != len(d.Marker) || r == utf8.RuneError || unicode.IsSpace(r) {
			return opts, fmt.Errorf("marker must be a single non-space character, got %q", d.Marker)
		}
		opts.Marker = r
	}
	if d.IndentWidth > 0 {
		opts.IndentWidth = d.IndentWidth
	}
	return opts, nil
}

// splitText turns a buffer into lines. A final newline does not start an
// extra line.
func splitText(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
