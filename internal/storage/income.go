package storage

import (
	"context"
	"fmt"
	"log/slog"

	"butcem/internal/core"
)

// AddIncome inserts one income row and returns the store-assigned id.
// Amount validation is the caller's job; the store persists what it is given.
func (s *Store) AddIncome(ctx context.Context, amount core.Money, month, year int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO income (amount, month, year) VALUES (?, ?, ?)`,
		amount.Cents, month, year)
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"amount_cents", amount.Cents,
		"month", month,
		"year", year)

	return id, nil
}

// IncomeByMonth returns the income rows for a (month, year) pair. Order is
// insignificant; callers consume at most the first record.
func (s *Store) IncomeByMonth(ctx context.Context, month, year int) ([]core.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, month, year FROM income WHERE month = ? AND year = ?`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("query income by month: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var inc core.Income
		if err := rows.Scan(&inc.ID, &inc.Amount.Cents, &inc.Month, &inc.Year); err != nil {
			return nil, fmt.Errorf("scan income row: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate income rows: %w", err)
	}
	return incomes, nil
}

// TotalIncomeByMonth sums income amounts for a month. Months with no rows
// yield zero, never a null sentinel.
func (s *Store) TotalIncomeByMonth(ctx context.Context, month, year int) (core.Money, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM income WHERE month = ? AND year = ?`,
		month, year).Scan(&total)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum income by month: %w", err)
	}
	return core.Money{Cents: total}, nil
}

// UpdateIncome replaces the amount of the income row with the given id.
// Returns ErrNotFound when no row matched, so callers can tell an applied
// update from a no-op.
func (s *Store) UpdateIncome(ctx context.Context, id int64, amount core.Money) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE income SET amount = ? WHERE id = ?`,
		amount.Cents, id)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update income rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Income updated", "id", id, "amount_cents", amount.Cents)
	return nil
}

// DeleteIncome removes the income row with the given id. Returns ErrNotFound
// when no row matched.
func (s *Store) DeleteIncome(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM income WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete income rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Income deleted", "id", id)
	return nil
}
