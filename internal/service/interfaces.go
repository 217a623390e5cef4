// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/amoghbhat/spence/internal/model"
)

// ExpenseStore defines the contract for expense persistence. Date range
// parameters are epoch milliseconds, inclusive on both ends, matching the
// half-open day-aligned ranges produced by the date-range resolver.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, expense *model.Expense) (int64, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	ExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error)
	ExpensesByDateRange(ctx context.Context, startMillis, endMillis int64) ([]model.Expense, error)

	// Aggregate reads
	TotalAmount(ctx context.Context) (float64, error)
	TotalByCategory(ctx context.Context, category string) (float64, error)
	TotalByDateRange(ctx context.Context, startMillis, endMillis int64) (float64, error)
	CountByDateRange(ctx context.Context, startMillis, endMillis int64) (int, error)
	AverageByCategory(ctx context.Context, category string) (float64, error)
	LargestExpenses(ctx context.Context, minAmount float64, limit int) ([]model.Expense, error)
	TopCategories(ctx context.Context, limit int) ([]model.CategoryTotal, error)
	CountByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

// CategoryStore defines the contract for category persistence. Categories
// returns the list in stored (first-seen) order; that order is observable
// through keyword-match tie-breaking.
type CategoryStore interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CategoryByName(ctx context.Context, name string) (*model.Category, error)
	AddCategory(ctx context.Context, category model.Category) error
	DeleteCategory(ctx context.Context, name string) error
	UpdateCategoryKeywords(ctx context.Context, name string, keywords []string) error
	SearchCategoriesByKeyword(ctx context.Context, keyword string) ([]model.Category, error)
}

// BudgetStore defines the contract for month-keyed budget persistence.
// Saving a budget also moves the "current budget" pointer to that month;
// deleting the pointed-at month clears the pointer.
type BudgetStore interface {
	SaveBudget(ctx context.Context, amount float64, month string) error
	Budget(ctx context.Context, month string) (*model.Budget, error)
	DeleteBudget(ctx context.Context, month string) error
	BudgetMonths(ctx context.Context) ([]string, error)
	CurrentBudget(ctx context.Context) (*model.Budget, error)
}

// Storage is the full persistence surface implemented by the SQLite store.
type Storage interface {
	ExpenseStore
	CategoryStore
	BudgetStore

	Migrate(ctx context.Context) error
	Close() error
}
