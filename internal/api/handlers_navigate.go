package api

import (
	"net/http"
	"time"

	"github.com/dgallion1/orgnav/internal/navigator"
)

type navigateRequest struct {
	Op string `json:"op"`
	documentFields
	navigator.Request
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req navigateRequest
	if err := decodeJSON(w, r, s.cfg.MaxUploadBytes, &req); err != nil {
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	op, err := navigator.ParseOp(req.Op)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	lines, err := req.lines(s.cfg.MaxLines)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := req.options(s.cfg.Outline())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := navigator.Navigate(lines, opts, op, req.Request)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.stats.Record(string(op), time.Since(start))
	writeJSON(w, res)
}
