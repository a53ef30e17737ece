package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"butcem/internal/core"
	"butcem/internal/storage"
)

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createExpense(w, r)
	case http.MethodGet:
		s.listExpenses(w, r)
	default:
		respondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseExpenseDate(parser)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	cents, err := core.ParseDecimalToCents(parser.Get("amount"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	expense := core.Expense{
		Category:    parser.Get("category"),
		Description: parser.Get("description"),
		Amount:      core.Money{Cents: cents},
		Date:        date,
	}
	if err := expense.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.AddExpense(r.Context(), expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save expense", "error", err, "category", expense.Category, "amount_cents", cents)
		respondError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	expense.ID = id
	s.invalidateSummaries()

	respondData(w, http.StatusCreated, toExpenseDTO(expense))
}

// parseExpenseDate reads the expense date from either an ISO "date" field or
// separate day/month/year fields, defaulting to today.
func parseExpenseDate(parser *RequestBodyParser) (core.Date, error) {
	if v := parser.Get("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.Date{}, err
		}
		return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}

	now := time.Now()
	day := parser.GetInt("day", now.Day())
	month := parser.GetInt("month", int(now.Month()))
	year := parser.GetInt("year", now.Year())
	return core.NewDate(year, month, day), nil
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	items, err := s.store.ExpensesByMonth(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	respondData(w, http.StatusOK, toExpenseDTOs(items))
}

func (s *Server) handleExpensesByDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	dp := ParseDateParams(r.URL.Query())
	if err := core.ValidateMonth(dp.Month, dp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if dp.Day < 1 || dp.Day > 31 {
		respondError(w, http.StatusUnprocessableEntity, core.ErrInvalidDay.Error())
		return
	}

	items, err := s.store.ExpensesByDay(r.Context(), dp.Day, dp.Month, dp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "List day expenses error", "error", err, "day", dp.Day, "month", dp.Month, "year", dp.Year)
		respondError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	respondData(w, http.StatusOK, toExpenseDTOs(items))
}

func toExpenseDTOs(items []core.Expense) []expenseDTO {
	dtos := make([]expenseDTO, 0, len(items))
	for _, e := range items {
		dtos = append(dtos, toExpenseDTO(e))
	}
	return dtos
}

func (s *Server) handleExpensesTotal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	total, err := s.store.TotalExpensesByMonth(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense total error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to load expense total")
		return
	}

	respondData(w, http.StatusOK, monthTotalDTO{
		Month:      mp.Month,
		Year:       mp.Year,
		Total:      total.Lira(),
		TotalCents: total.Cents,
	})
}

func (s *Server) handleExpenseCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	totals, err := s.store.ExpensesByCategory(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category totals error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to load category totals")
		return
	}

	dtos := make([]categoryTotalDTO, 0, len(totals))
	for _, ct := range totals {
		dtos = append(dtos, categoryTotalDTO{
			Category:   ct.Category,
			Total:      ct.Total.Lira(),
			TotalCents: ct.Total.Cents,
		})
	}
	respondData(w, http.StatusOK, dtos)
}

func (s *Server) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	totals, err := s.store.DailyExpenseTotals(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Daily totals error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to load daily totals")
		return
	}

	dto := dailyTotalsDTO{Month: mp.Month, Year: mp.Year, Totals: make(map[int]amountDTO, len(totals))}
	for day, total := range totals {
		dto.Totals[day] = toAmountDTO(total)
	}
	respondData(w, http.StatusOK, dto)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
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

	category := parser.Get("category")
	description := parser.Get("description")
	if strings.TrimSpace(category) == "" {
		respondError(w, http.StatusUnprocessableEntity, core.ErrEmptyCategory.Error())
		return
	}
	if strings.TrimSpace(description) == "" {
		respondError(w, http.StatusUnprocessableEntity, core.ErrEmptyDescription.Error())
		return
	}
	if len(description) > 200 {
		respondError(w, http.StatusUnprocessableEntity, "description too long (max 200 characters)")
		return
	}

	cents, err := core.ParseDecimalToCents(parser.Get("amount"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	if err := s.store.UpdateExpense(r.Context(), id, category, description, core.Money{Cents: cents}); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update expense", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}
	s.invalidateSummaries()

	respondData(w, http.StatusOK, struct {
		ID          int64  `json:"id"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
		AmountCents int64  `json:"amount_cents"`
	}{
		ID:          id,
		Category:    category,
		Description: description,
		Amount:      core.Money{Cents: cents}.Lira(),
		AmountCents: cents,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete expense", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	s.invalidateSummaries()

	respondData(w, http.StatusOK, struct {
		ID int64 `json:"id"`
	}{ID: id})
}
