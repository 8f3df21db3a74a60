package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rasyidf/hustleflow/internal/estimates"
)

type estimateRequest struct {
	Title string       `json:"title"`
	Notes string       `json:"notes"`
	Quote quoteRequest `json:"quote"`
}

func (s *server) handleEstimatesCreate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	q, err := s.buildQuote(req.Quote, s.settings.Snapshot())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	input, err := json.Marshal(req.Quote)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	est, err := s.estimates.Save(r.Context(), estimates.Draft{
		Title:  req.Title,
		Notes:  req.Notes,
		Input:  input,
		Result: q.result,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, est)
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.estimates.List(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":     query,
		"estimates": items,
	})
}

func (s *server) handleEstimateDetail(w http.ResponseWriter, r *http.Request) {
	est, err := s.estimates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, est)
}
