package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/orgnav/internal/doctree"
	"github.com/dgallion1/orgnav/internal/outline"
	"github.com/dgallion1/orgnav/internal/parser"
)

type outlineRequest struct {
	documentFields
}

// handleOutline builds the heading tree of a buffer. It accepts either a
// JSON body or a multipart upload with a "file" field.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		req outlineRequest
		doc *doctree.Document
		err error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		doc, req, err = s.readUpload(w, r)
	} else {
		doc, req, err = s.readOutlineJSON(w, r)
	}
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		jsonError(w, err.Error(), status)
		return
	}

	base := s.cfg.Outline()
	if doc.Options != nil {
		base = *doc.Options
	}
	opts, err := req.options(base)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := opts.Classifier()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tree := doctree.FromOutline(doc.Title, outline.Build(doc.Lines, c))
	s.stats.Record("outline", time.Since(start))
	writeJSON(w, tree)
}

func (s *Server) readOutlineJSON(w http.ResponseWriter, r *http.Request) (*doctree.Document, outlineRequest, error) {
	var req outlineRequest
	if err := decodeJSON(w, r, s.cfg.MaxUploadBytes, &req); err != nil {
		return nil, req, fmt.Errorf("invalid request: %w", err)
	}
	lines, err := req.lines(s.cfg.MaxLines)
	if err != nil {
		return nil, req, err
	}
	return &doctree.Document{Title: req.Title, Lines: lines}, req, nil
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*doctree.Document, outlineRequest, error) {
	var req outlineRequest

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, req, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	req.Title = r.FormValue("title")
	req.Mode = r.FormValue("mode")
	req.Marker = r.FormValue("marker")

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, req, fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.Options{PDFFallback: s.cfg.PDFFallbackPdftotext}.ForFile(filename)
	if err != nil {
		return nil, req, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	doc, err := p.Parse(io.LimitReader(file, s.cfg.MaxUploadBytes), filename)
	if err != nil {
		return nil, req, err
	}
	if len(doc.Lines) > s.cfg.MaxLines {
		return nil, req, fmt.Errorf("%w: %d exceeds %d", errTooManyLines, len(doc.Lines), s.cfg.MaxLines)
	}
	if req.Title != "" {
		doc.Title = req.Title
	}
	s.log.Debug("parsed upload", "filename", filename, "lines", len(doc.Lines))
	return doc, req, nil
}
