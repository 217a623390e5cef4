package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBudget_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, 5000, "2025-03"))

	budget, err := store.Budget(ctx, "2025-03")
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, "2025-03", budget.Month)
	assert.InDelta(t, 5000.0, budget.Amount, 0.001)
	assert.False(t, budget.CreatedAt.IsZero())

	// Upsert replaces the amount for the same month.
	require.NoError(t, store.SaveBudget(ctx, 7000, "2025-03"))
	budget, err = store.Budget(ctx, "2025-03")
	require.NoError(t, err)
	assert.InDelta(t, 7000.0, budget.Amount, 0.001)

	months, err := store.BudgetMonths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03"}, months)
}

func TestSaveBudget_RejectsNonPositiveAmount(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveBudget(ctx, 0, "2025-03"), ErrInvalidAmount)
	assert.ErrorIs(t, store.SaveBudget(ctx, -100, "2025-03"), ErrInvalidAmount)

	budget, err := store.Budget(ctx, "2025-03")
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestBudget_MissingMonthIsNil(t *testing.T) {
	store := newTestStorage(t)

	budget, err := store.Budget(context.Background(), "1999-01")
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestBudgetMonths_NewestFirst(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, 100, "2025-01"))
	require.NoError(t, store.SaveBudget(ctx, 200, "2025-03"))
	require.NoError(t, store.SaveBudget(ctx, 300, "2025-02"))

	months, err := store.BudgetMonths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03", "2025-02", "2025-01"}, months)
}

func TestDeleteBudget(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.DeleteBudget(ctx, "2025-03"), ErrNotFound)

	require.NoError(t, store.SaveBudget(ctx, 5000, "2025-03"))
	require.NoError(t, store.DeleteBudget(ctx, "2025-03"))

	budget, err := store.Budget(ctx, "2025-03")
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestCurrentBudget_FollowsPointer(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// No budgets, no pointer.
	current, err := store.CurrentBudget(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// The pointer follows the most recently saved month.
	require.NoError(t, store.SaveBudget(ctx, 1000, "2025-02"))
	require.NoError(t, store.SaveBudget(ctx, 2000, "2025-03"))

	current, err = store.CurrentBudget(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "2025-03", current.Month)

	// Deleting a non-pointer month leaves the pointer alone.
	require.NoError(t, store.DeleteBudget(ctx, "2025-02"))
	current, err = store.CurrentBudget(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "2025-03", current.Month)

	// Deleting the pointed month clears the pointer.
	require.NoError(t, store.DeleteBudget(ctx, "2025-03"))
	current, err = store.CurrentBudget(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
