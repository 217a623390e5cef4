package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amoghbhat/spence/internal/model"
)

const currentBudgetMonthKey = "current_budget_month"

// SaveBudget inserts or updates the budget for a month key ("YYYY-MM").
// The created timestamp is kept on update, and the current-budget pointer
// moves to the saved month.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, amount float64, month string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(month, "month"); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}

	now := time.Now().UnixMilli()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (month, amount, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(month) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		month, amount, now, now); err != nil {
		return fmt.Errorf("failed to save budget for %s: %w", month, err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentBudgetMonthKey, month); err != nil {
		return fmt.Errorf("failed to update current budget pointer: %w", err)
	}

	slog.Debug("saved budget", "month", month, "amount", amount)
	return nil
}

// Budget returns the budget stored for a month, or nil when none exists.
func (s *SQLiteStorage) Budget(ctx context.Context, month string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(month, "month"); err != nil {
		return nil, err
	}

	var b model.Budget
	var createdMillis, updatedMillis int64
	err := s.db.QueryRowContext(ctx,
		`SELECT month, amount, created_at, updated_at FROM budgets WHERE month = ?`, month).
		Scan(&b.Month, &b.Amount, &createdMillis, &updatedMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget for %s: %w", month, err)
	}

	b.CreatedAt = time.UnixMilli(createdMillis)
	b.UpdatedAt = time.UnixMilli(updatedMillis)
	return &b, nil
}

// DeleteBudget removes a month's budget. If that month is the current
// pointer, the pointer is cleared too.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, month string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(month, "month"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE month = ?`, month)
	if err != nil {
		return fmt.Errorf("failed to delete budget for %s: %w", month, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: budget for %s", ErrNotFound, month)
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM settings WHERE key = ? AND value = ?`,
		currentBudgetMonthKey, month); err != nil {
		return fmt.Errorf("failed to clear current budget pointer: %w", err)
	}

	slog.Debug("deleted budget", "month", month)
	return nil
}

// BudgetMonths returns every month with a stored budget, newest first.
func (s *SQLiteStorage) BudgetMonths(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT month FROM budgets ORDER BY month DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("failed to scan budget month: %w", err)
		}
		months = append(months, month)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget months: %w", err)
	}
	return months, nil
}

// CurrentBudget returns the budget the pointer row names, or nil when no
// budget has been set since the pointer was last cleared.
func (s *SQLiteStorage) CurrentBudget(ctx context.Context) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var month string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currentBudgetMonthKey).Scan(&month)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query current budget pointer: %w", err)
	}

	return s.Budget(ctx, month)
}
