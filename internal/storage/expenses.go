package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/amoghbhat/spence/internal/model"
)

const expenseColumns = `id, amount, description, category, date, created_at`

// InsertExpense stores a new expense and returns its assigned id.
func (s *SQLiteStorage) InsertExpense(ctx context.Context, expense *model.Expense) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateExpense(expense); err != nil {
		return 0, err
	}

	date := expense.Date
	if date.IsZero() {
		date = time.Now()
	}
	createdAt := expense.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, description, category, date, created_at) VALUES (?, ?, ?, ?, ?)`,
		expense.Amount, expense.Description, expense.Category, date.UnixMilli(), createdAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get expense id: %w", err)
	}

	slog.Debug("inserted expense", "id", id, "amount", expense.Amount, "category", expense.Category)
	return id, nil
}

// DeleteExpense removes an expense by id.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %d", ErrNotFound, id)
	}
	return nil
}

// ListExpenses returns all expenses, newest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY created_at DESC`
	return s.queryExpenses(ctx, query)
}

// ExpensesByCategory returns a category's expenses, newest first.
func (s *SQLiteStorage) ExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE category = ? ORDER BY created_at DESC`
	return s.queryExpenses(ctx, query, category)
}

// ExpensesByDateRange returns expenses with dates inside [start, end],
// millisecond epochs, newest first.
func (s *SQLiteStorage) ExpensesByDateRange(ctx context.Context, startMillis, endMillis int64) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(startMillis, endMillis); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE date >= ? AND date <= ? ORDER BY created_at DESC`
	return s.queryExpenses(ctx, query, startMillis, endMillis)
}

// TotalAmount returns the sum over all expenses, zero when there are none.
func (s *SQLiteStorage) TotalAmount(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.queryFloat(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`)
}

// TotalByCategory returns the sum of a category's expenses.
func (s *SQLiteStorage) TotalByCategory(ctx context.Context, category string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(category, "category"); err != nil {
		return 0, err
	}
	return s.queryFloat(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE category = ?`, category)
}

// TotalByDateRange returns the sum of expenses inside [start, end].
func (s *SQLiteStorage) TotalByDateRange(ctx context.Context, startMillis, endMillis int64) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDateRange(startMillis, endMillis); err != nil {
		return 0, err
	}
	return s.queryFloat(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= ? AND date <= ?`,
		startMillis, endMillis)
}

// CountByDateRange returns the number of expenses inside [start, end].
func (s *SQLiteStorage) CountByDateRange(ctx context.Context, startMillis, endMillis int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDateRange(startMillis, endMillis); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE date >= ? AND date <= ?`,
		startMillis, endMillis).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// AverageByCategory returns the mean expense amount for a category, zero
// when the category has no expenses.
func (s *SQLiteStorage) AverageByCategory(ctx context.Context, category string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(category, "category"); err != nil {
		return 0, err
	}
	return s.queryFloat(ctx,
		`SELECT COALESCE(AVG(amount), 0) FROM expenses WHERE category = ?`, category)
}

// LargestExpenses returns up to limit expenses with amount >= minAmount,
// largest first.
func (s *SQLiteStorage) LargestExpenses(ctx context.Context, minAmount float64, limit int) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE amount >= ? ORDER BY amount DESC LIMIT ?`
	return s.queryExpenses(ctx, query, minAmount, limit)
}

// TopCategories returns category totals, biggest spenders first.
func (s *SQLiteStorage) TopCategories(ctx context.Context, limit int) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total FROM expenses GROUP BY category ORDER BY total DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var ct model.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

// CountByCategory returns transaction counts per category, most frequent
// first.
func (s *SQLiteStorage) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) AS count FROM expenses GROUP BY category ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var cc model.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}
	return counts, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var dateMillis, createdMillis int64
		if err := rows.Scan(&e.ID, &e.Amount, &e.Description, &e.Category, &dateMillis, &createdMillis); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.UnixMilli(dateMillis)
		e.CreatedAt = time.UnixMilli(createdMillis)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

func (s *SQLiteStorage) queryFloat(ctx context.Context, query string, args ...any) (float64, error) {
	var value sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to query aggregate: %w", err)
	}
	if !value.Valid {
		return 0, nil
	}
	return value.Float64, nil
}
