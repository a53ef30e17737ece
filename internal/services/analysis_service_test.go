package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"butcem/internal/core"
	"butcem/internal/reports"
	"butcem/internal/storage"
)

type stubGenerator struct {
	report string
	err    error
	calls  int
}

func (g *stubGenerator) GenerateAnalysis(ctx context.Context, expenses []core.Expense, totalIncome, totalExpense core.Money) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.report, nil
}

func newTestService(t *testing.T, gen *stubGenerator) (*AnalysisService, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "butcem.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	rs, err := reports.Open(filepath.Join(dir, "reports.json"))
	if err != nil {
		t.Fatalf("open reports: %v", err)
	}
	return NewAnalysisService(store, gen, rs), store
}

func TestGenerateCachesReport(t *testing.T) {
	gen := &stubGenerator{report: "spend less on takeout"}
	svc, store := newTestService(t, gen)
	ctx := context.Background()

	if _, err := store.AddExpense(ctx, core.Expense{
		Category: "Food", Description: "takeout",
		Amount: core.Money{Cents: 4500}, Date: core.NewDate(2024, 3, 5),
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	report, err := svc.Generate(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report != "spend less on takeout" {
		t.Fatalf("report = %q", report)
	}

	cached, ok := svc.Cached(3, 2024)
	if !ok || cached != report {
		t.Fatalf("cached = %q, %v", cached, ok)
	}
}

func TestFailedGenerationPreservesCachedReport(t *testing.T) {
	gen := &stubGenerator{report: "first"}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 3, 2024); err != nil {
		t.Fatalf("generate: %v", err)
	}

	gen.err = errors.New("network down")
	if _, err := svc.Generate(ctx, 3, 2024); err == nil {
		t.Fatalf("expected error from failed generation")
	}

	cached, ok := svc.Cached(3, 2024)
	if !ok || cached != "first" {
		t.Fatalf("failed regeneration clobbered cache: %q, %v", cached, ok)
	}
}

func TestCachedMissWithoutGeneration(t *testing.T) {
	svc, _ := newTestService(t, &stubGenerator{report: "x"})
	if _, ok := svc.Cached(1, 2030); ok {
		t.Fatalf("expected cache miss")
	}
}

func TestSummary(t *testing.T) {
	svc, store := newTestService(t, &stubGenerator{report: "x"})
	ctx := context.Background()

	if _, err := store.AddIncome(ctx, core.Money{Cents: 100000}, 3, 2024); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err := store.AddExpense(ctx, core.Expense{
		Category: "Bills", Description: "electric",
		Amount: core.Money{Cents: 30000}, Date: core.NewDate(2024, 3, 12),
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	sum, err := svc.Summary(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Balance.Cents != 70000 {
		t.Fatalf("balance = %d, want 70000", sum.Balance.Cents)
	}
}
