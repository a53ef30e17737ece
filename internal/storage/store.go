// Package storage implements the local SQLite store for income and expense
// records plus the on-demand monthly aggregations that feed the calendar,
// analysis and balance views.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"butcem/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by update and delete operations when no row
// matched the given identifier.
var ErrNotFound = errors.New("record not found")

// Store owns the SQLite connection. It is passed explicitly to its callers;
// there is no package-level handle. Tests open a fresh store per test.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and runs the schema
// migrations. A failure here is fatal to startup: callers must not proceed
// with a half-initialized store.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping verifies the database connection, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// MonthSummary composes the balance view for a month from the two totals.
func (s *Store) MonthSummary(ctx context.Context, month, year int) (core.MonthSummary, error) {
	income, err := s.TotalIncomeByMonth(ctx, month, year)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("total income: %w", err)
	}
	expenses, err := s.TotalExpensesByMonth(ctx, month, year)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("total expenses: %w", err)
	}
	return core.MonthSummary{
		Year:          year,
		Month:         month,
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       core.Money{Cents: income.Cents - expenses.Cents},
	}, nil
}
