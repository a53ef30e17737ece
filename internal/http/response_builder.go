// Package http provides the JSON API server and handlers.
//
// Every response uses one of two envelopes: {"data": ...} on success and
// {"error": "..."} on failure.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"butcem/internal/core"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: message})
}

func respondMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	w.Header().Set("Allow", strings.Join(methods, ", "))
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

type incomeDTO struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
}

func toIncomeDTO(i core.Income) incomeDTO {
	return incomeDTO{
		ID:          i.ID,
		Amount:      i.Amount.Lira(),
		AmountCents: i.Amount.Cents,
		Month:       i.Month,
		Year:        i.Year,
	}
}

type expenseDTO struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Day         int    `json:"day"`
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.Lira(),
		AmountCents: e.Amount.Cents,
		Date:        e.Date.ISO(),
		Day:         e.Date.Day(),
	}
}

type amountDTO struct {
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
}

func toAmountDTO(m core.Money) amountDTO {
	return amountDTO{Amount: m.Lira(), AmountCents: m.Cents}
}

type monthTotalDTO struct {
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
}

type categoryTotalDTO struct {
	Category   string `json:"category"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
}

type dailyTotalsDTO struct {
	Month  int               `json:"month"`
	Year   int               `json:"year"`
	Totals map[int]amountDTO `json:"totals"`
}

type summaryDTO struct {
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	TotalIncome   amountDTO `json:"total_income"`
	TotalExpenses amountDTO `json:"total_expenses"`
	Balance       amountDTO `json:"balance"`
}

func toSummaryDTO(s core.MonthSummary) summaryDTO {
	return summaryDTO{
		Month:         s.Month,
		Year:          s.Year,
		TotalIncome:   toAmountDTO(s.TotalIncome),
		TotalExpenses: toAmountDTO(s.TotalExpenses),
		Balance:       toAmountDTO(s.Balance),
	}
}

type reportDTO struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Report string `json:"report"`
}
