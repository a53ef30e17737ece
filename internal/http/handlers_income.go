package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"butcem/internal/core"
	"butcem/internal/storage"
)

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createIncome(w, r)
	case http.MethodGet:
		s.listIncome(w, r)
	default:
		respondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createIncome(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	month := parser.GetInt("month", int(now.Month()))
	year := parser.GetInt("year", now.Year())

	cents, err := core.ParseNonNegativeCents(parser.Get("amount"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	income := core.Income{
		Amount: core.Money{Cents: cents},
		Month:  month,
		Year:   year,
	}
	if err := income.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.AddIncome(r.Context(), income.Amount, income.Month, income.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save income", "error", err, "month", month, "year", year)
		respondError(w, http.StatusInternalServerError, "failed to save income")
		return
	}
	income.ID = id
	s.invalidateSummaries()

	respondData(w, http.StatusCreated, toIncomeDTO(income))
}

func (s *Server) listIncome(w http.ResponseWriter, r *http.Request) {
	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	items, err := s.store.IncomeByMonth(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "List income error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to list income")
		return
	}

	dtos := make([]incomeDTO, 0, len(items))
	for _, i := range items {
		dtos = append(dtos, toIncomeDTO(i))
	}
	respondData(w, http.StatusOK, dtos)
}

func (s *Server) handleIncomeTotal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	total, err := s.store.TotalIncomeByMonth(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Income total error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to load income total")
		return
	}

	respondData(w, http.StatusOK, monthTotalDTO{
		Month:      mp.Month,
		Year:       mp.Year,
		Total:      total.Lira(),
		TotalCents: total.Cents,
	})
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMethodNotAllowed(w, http.MethodPost)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := ParseID(parser.Get("id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	cents, err := core.ParseNonNegativeCents(parser.Get("amount"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	if err := s.store.UpdateIncome(r.Context(), id, core.Money{Cents: cents}); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "income not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update income", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update income")
		return
	}
	s.invalidateSummaries()

	respondData(w, http.StatusOK, amountDTO{Amount: core.Money{Cents: cents}.Lira(), AmountCents: cents})
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMethodNotAllowed(w, http.MethodPost)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := ParseID(parser.Get("id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	if err := s.store.DeleteIncome(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "income not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete income", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete income")
		return
	}
	s.invalidateSummaries()

	respondData(w, http.StatusOK, struct {
		ID int64 `json:"id"`
	}{ID: id})
}
