package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"butcem/internal/core"
)

// AddExpense inserts one expense row and returns the store-assigned id.
// The denormalized day/month/year columns are derived here from the
// expense's Date, the single write boundary that establishes their
// consistency with the canonical date column.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (category, description, amount, date, day, month, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Category, e.Description, e.Amount.Cents, e.Date.ISO(),
		e.Date.Day(), e.Date.Month(), e.Date.Year())
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"category", e.Category,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.ISO())

	return id, nil
}

// ExpensesByDay returns the expenses for one calendar day, newest insert
// first (id descending).
func (s *Store) ExpensesByDay(ctx context.Context, day, month, year int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, description, amount, day, month, year
		 FROM expenses WHERE day = ? AND month = ? AND year = ?
		 ORDER BY id DESC`,
		day, month, year)
	if err != nil {
		return nil, fmt.Errorf("query expenses by day: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ExpensesByMonth returns the expenses for a month ordered by day
// descending, then id descending.
func (s *Store) ExpensesByMonth(ctx context.Context, month, year int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, description, amount, day, month, year
		 FROM expenses WHERE month = ? AND year = ?
		 ORDER BY day DESC, id DESC`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("query expenses by month: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// TotalExpensesByMonth sums expense amounts for a month, zero when no rows.
func (s *Store) TotalExpensesByMonth(ctx context.Context, month, year int) (core.Money, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE month = ? AND year = ?`,
		month, year).Scan(&total)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses by month: %w", err)
	}
	return core.Money{Cents: total}, nil
}

// ExpensesByCategory returns (category, sum) pairs for a month ordered by
// sum descending. Tie order between equal sums is storage-engine-defined.
func (s *Store) ExpensesByCategory(ctx context.Context, month, year int) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total FROM expenses
		 WHERE month = ? AND year = ?
		 GROUP BY category ORDER BY total DESC`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("query expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

// DailyExpenseTotals maps day-of-month to summed amount for the calendar
// markers. Days without expenses are absent from the map; callers treat
// absence as zero.
func (s *Store) DailyExpenseTotals(ctx context.Context, month, year int) (map[int]core.Money, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, SUM(amount) AS total FROM expenses
		 WHERE month = ? AND year = ?
		 GROUP BY day`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("query daily expense totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int]core.Money)
	for rows.Next() {
		var day int
		var total int64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals[day] = core.Money{Cents: total}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return totals, nil
}

// UpdateExpense replaces category, description and amount of the expense
// with the given id. The date (and its derived columns) is immutable after
// insert. Returns ErrNotFound when no row matched.
func (s *Store) UpdateExpense(ctx context.Context, id int64, category, description string, amount core.Money) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category = ?, description = ?, amount = ? WHERE id = ?`,
		category, description, amount.Cents, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "category", category, "amount_cents", amount.Cents)
	return nil
}

// DeleteExpense removes the expense with the given id. Returns ErrNotFound
// when no row matched.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		var (
			e                core.Expense
			day, month, year int
		)
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount.Cents, &day, &month, &year); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.Date = core.NewDate(year, month, day)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return expenses, nil
}
