// Package services orchestrates operations that span the store, the
// advisory client and the report cache.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"butcem/internal/advisor"
	"butcem/internal/core"
	"butcem/internal/reports"
	"butcem/internal/storage"
)

// ErrGeneration marks advisor failures so the transport layer can map them
// to an upstream error status.
var ErrGeneration = errors.New("analysis generation failed")

// AnalysisService produces and caches monthly narrative reports. Generation
// is a single awaited round trip: read the month from the store, call the
// advisor once, persist on success. A failed generation leaves any
// previously cached report in place.
type AnalysisService struct {
	store     *storage.Store
	generator advisor.AnalysisGenerator
	reports   *reports.Store
}

func NewAnalysisService(store *storage.Store, generator advisor.AnalysisGenerator, reportStore *reports.Store) *AnalysisService {
	return &AnalysisService{
		store:     store,
		generator: generator,
		reports:   reportStore,
	}
}

// Cached returns the stored report for a month without generating.
func (s *AnalysisService) Cached(month, year int) (string, bool) {
	return s.reports.Get(month, year)
}

// Generate builds a fresh report for a month and overwrites the cached one.
func (s *AnalysisService) Generate(ctx context.Context, month, year int) (string, error) {
	expenses, err := s.store.ExpensesByMonth(ctx, month, year)
	if err != nil {
		return "", fmt.Errorf("list month expenses: %w", err)
	}
	summary, err := s.store.MonthSummary(ctx, month, year)
	if err != nil {
		return "", fmt.Errorf("month summary: %w", err)
	}

	report, err := s.generator.GenerateAnalysis(ctx, expenses, summary.TotalIncome, summary.TotalExpenses)
	if err != nil {
		// The cached report, if any, stays untouched.
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := s.reports.Put(month, year, report); err != nil {
		slog.ErrorContext(ctx, "Failed to cache report", "error", err, "month", month, "year", year)
		// The report itself is still usable by the caller.
		return report, nil
	}

	slog.InfoContext(ctx, "Analysis report generated",
		"month", month,
		"year", year,
		"expenses", len(expenses),
		"balance_cents", summary.Balance.Cents)

	return report, nil
}

// Summary exposes the month balance view for the dashboard header.
func (s *AnalysisService) Summary(ctx context.Context, month, year int) (core.MonthSummary, error) {
	return s.store.MonthSummary(ctx, month, year)
}
