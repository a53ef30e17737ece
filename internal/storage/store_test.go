package storage

import (
	"context"
	"path/filepath"
	"testing"

	"butcem/internal/core"
)

// openTestStore opens a fresh store in a per-test temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "butcem.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "butcem.db")

	s1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	ctx := context.Background()
	if _, err := s1.AddIncome(ctx, core.Money{Cents: 100000}, 3, 2024); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening must not error and must leave existing rows untouched.
	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	incomes, err := s2.IncomeByMonth(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("income by month: %v", err)
	}
	if len(incomes) != 1 || incomes[0].Amount.Cents != 100000 {
		t.Fatalf("rows altered across reopen: %+v", incomes)
	}
}

func TestOpenBadPath(t *testing.T) {
	if _, err := Open(filepath.Join(string([]byte{0}), "nope.db")); err == nil {
		t.Fatalf("expected error for unusable path")
	}
}

func TestMonthSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.AddIncome(ctx, core.Money{Cents: 100000}, 3, 2024); err != nil {
		t.Fatalf("add income: %v", err)
	}
	for _, e := range []core.Expense{
		{Category: "Food", Description: "groceries", Amount: core.Money{Cents: 10000}, Date: core.NewDate(2024, 3, 5)},
		{Category: "Transport", Description: "bus", Amount: core.Money{Cents: 5000}, Date: core.NewDate(2024, 3, 5)},
		{Category: "Food", Description: "lunch", Amount: core.Money{Cents: 3000}, Date: core.NewDate(2024, 3, 10)},
	} {
		if _, err := s.AddExpense(ctx, e); err != nil {
			t.Fatalf("add expense: %v", err)
		}
	}

	sum, err := s.MonthSummary(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("month summary: %v", err)
	}
	if sum.TotalIncome.Cents != 100000 {
		t.Fatalf("total income = %d", sum.TotalIncome.Cents)
	}
	if sum.TotalExpenses.Cents != 18000 {
		t.Fatalf("total expenses = %d", sum.TotalExpenses.Cents)
	}
	if sum.Balance.Cents != 82000 {
		t.Fatalf("balance = %d, want 82000", sum.Balance.Cents)
	}
}

func TestMonthSummaryEmptyMonth(t *testing.T) {
	s := openTestStore(t)

	sum, err := s.MonthSummary(context.Background(), 7, 2031)
	if err != nil {
		t.Fatalf("month summary: %v", err)
	}
	if sum.TotalIncome.Cents != 0 || sum.TotalExpenses.Cents != 0 || sum.Balance.Cents != 0 {
		t.Fatalf("empty month summary not zero: %+v", sum)
	}
}
