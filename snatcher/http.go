package snatcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/snatch/archive"
	"github.com/hazyhaar/snatch/markup"
	"github.com/hazyhaar/snatch/reduce"
	"github.com/hazyhaar/snatch/shield"
	"github.com/hazyhaar/snatch/stylesnap"
)

// RegisterHTTP mounts the JSON API on r.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/reduce", s.handleReduce)
		r.Post("/clean", s.handleClean)
		r.Get("/candidates", s.handleCandidates)
		r.Get("/extractions", s.handleListExtractions)
		r.Get("/extractions/{id}", s.handleGetExtraction)
		r.Delete("/extractions/{id}", s.handleDeleteExtraction)
	})
}

// Handler returns a router with the default middleware stack and the API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack(s.logger) {
		r.Use(mw)
	}
	s.RegisterHTTP(r)
	return r
}

type extractRequest struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.URL == "" || req.Selector == "" {
		writeError(w, http.StatusBadRequest, errors.New("url and selector are required"))
		return
	}
	rep, err := s.Extract(r.Context(), req.URL, req.Selector)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type reduceRequest struct {
	Snapshot stylesnap.Snapshot `json:"snapshot"`
	Options  *reduce.Options    `json:"options"`
}

type reduceResponse struct {
	CSS   string       `json:"css"`
	Stats reduce.Stats `json:"stats"`
}

func (s *Service) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req reduceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, s.reduce(req.Snapshot, req.Options))
}

func (s *Service) reduce(snap stylesnap.Snapshot, opts *reduce.Options) reduceResponse {
	o := s.cfg.Extract.ReducerOptions()
	if opts != nil {
		o = *opts
	}
	red := reduce.New(o)
	rules := red.Rules(snap)
	return reduceResponse{CSS: reduce.Format(rules), Stats: reduce.Summarize(snap, rules)}
}

type cleanRequest struct {
	HTML string `json:"html"`
}

func (s *Service) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": markup.Clean(req.HTML)})
}

func (s *Service) handleCandidates(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}
	sels, err := s.Candidates(r.Context(), url, queryInt(r, "limit", 0))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if sels == nil {
		sels = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": url, "candidates": sels})
}

func (s *Service) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Extractions(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if recs == nil {
		recs = []*archive.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Service) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Extraction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Service) handleDeleteExtraction(w http.ResponseWriter, r *http.Request) {
	if err := s.DeleteExtraction(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps service errors onto HTTP status codes.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, stylesnap.ErrElementNotFound), errors.Is(err, archive.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrNoArchive):
		code = http.StatusNotImplemented
	}
	if code == http.StatusInternalServerError {
		shield.GetLogger(r.Context()).Error("snatcher: request failed", "error", err)
	}
	writeError(w, code, err)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
