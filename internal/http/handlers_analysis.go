package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"butcem/internal/core"
	"butcem/internal/services"
)

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMethodNotAllowed(w, http.MethodPost)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	description := parser.Get("description")
	if description == "" {
		respondError(w, http.StatusUnprocessableEntity, core.ErrEmptyDescription.Error())
		return
	}

	category, err := s.suggester.SuggestCategory(r.Context(), description)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category suggestion error", "error", err)
		respondError(w, http.StatusBadGateway, "category suggestion unavailable")
		return
	}

	respondData(w, http.StatusOK, struct {
		Category string `json:"category"`
	}{Category: category})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.generateReport(w, r)
	case http.MethodGet:
		s.cachedReport(w, r)
	default:
		respondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// generateReport always produces a fresh report, replacing the cached one.
func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	month := parser.GetInt("month", int(now.Month()))
	year := parser.GetInt("year", now.Year())
	if err := core.ValidateMonth(month, year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, err := s.analysis.Generate(r.Context(), month, year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation error", "error", err, "month", month, "year", year)
		if errors.Is(err, services.ErrGeneration) {
			respondError(w, http.StatusBadGateway, "report generation unavailable")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	respondData(w, http.StatusOK, reportDTO{Month: month, Year: year, Report: report})
}

// cachedReport returns the stored report without calling the advisor.
func (s *Server) cachedReport(w http.ResponseWriter, r *http.Request) {
	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, ok := s.analysis.Cached(mp.Month, mp.Year)
	if !ok {
		respondError(w, http.StatusNotFound, "no report for this month")
		return
	}

	respondData(w, http.StatusOK, reportDTO{Month: mp.Month, Year: mp.Year, Report: report})
}
