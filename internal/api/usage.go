package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
)

func (s *Server) usageSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.usage.Summary(r.Context(), chi.URLParam(r, "userID"), currentTier(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, summary)
}

type consumption struct {
	Feature   membership.Feature `json:"feature"`
	Remaining int64              `json:"remaining"`
}

func (s *Server) consume(w http.ResponseWriter, r *http.Request) {
	feature, ok := membership.ParseFeature(chi.URLParam(r, "feature"))
	if !ok {
		respondError(w, ErrUnknownFeature)
		return
	}

	remaining, err := s.usage.Use(r.Context(), chi.URLParam(r, "userID"), currentTier(r), feature)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, consumption{Feature: feature, Remaining: remaining})
}

type resetResult struct {
	Reset bool `json:"reset"`
}

// resetUsage applies the monthly reset rule; it does not force a reset
// within the current month.
func (s *Server) resetUsage(w http.ResponseWriter, r *http.Request) {
	userID, tier := chi.URLParam(r, "userID"), currentTier(r)

	reset, err := s.usage.ResetMonthlyUsage(r.Context(), userID, tier)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	summary, err := s.usage.Summary(r.Context(), userID, tier)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondMeta(w, resetResult{Reset: reset}, summary)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	}
	respondError(w, err)
}
