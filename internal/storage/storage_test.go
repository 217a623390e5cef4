package storage

import (
	"context"
	"testing"
	"time"

	"github.com/amoghbhat/spence/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestStorage returns a migrated in-memory store. Tests inside this
// package cannot use internal/testutil without an import cycle.
func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func insertExpense(t *testing.T, store *SQLiteStorage, amount float64, description, category string, date time.Time) model.Expense {
	t.Helper()

	expense := model.Expense{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		CreatedAt:   date,
	}
	id, err := store.InsertExpense(context.Background(), &expense)
	require.NoError(t, err)
	expense.ID = id
	return expense
}
