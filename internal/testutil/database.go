// Package testutil provides shared fixtures for storage-backed tests:
// an in-memory migrated database plus builders for seeding expenses.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/service"
	"github.com/amoghbhat/spence/internal/storage"
)

// TestDB wraps an in-memory migrated store with helpers for seeding.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory database with migrations applied
// (which seeds the default categories). Cleanup is automatic.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return &TestDB{Storage: store, t: t}
}

// SeedExpense inserts one expense and returns it with its assigned ID.
func (db *TestDB) SeedExpense(amount float64, description, category string, date time.Time) model.Expense {
	db.t.Helper()

	expense := model.Expense{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		CreatedAt:   date,
	}
	id, err := db.Storage.InsertExpense(context.Background(), &expense)
	if err != nil {
		db.t.Fatalf("failed to seed expense %q: %v", description, err)
	}
	expense.ID = id
	return expense
}

// SeedExpenses inserts several expenses sharing a category and date.
func (db *TestDB) SeedExpenses(category string, date time.Time, amounts ...float64) []model.Expense {
	db.t.Helper()

	expenses := make([]model.Expense, 0, len(amounts))
	for _, amount := range amounts {
		expenses = append(expenses, db.SeedExpense(amount, "seeded expense", category, date))
	}
	return expenses
}

// MustCategory returns the named category or fails the test.
func (db *TestDB) MustCategory(name string) model.Category {
	db.t.Helper()

	category, err := db.Storage.CategoryByName(context.Background(), name)
	if err != nil {
		db.t.Fatalf("failed to look up category %q: %v", name, err)
	}
	if category == nil {
		db.t.Fatalf("category %q not found", name)
	}
	return *category
}
