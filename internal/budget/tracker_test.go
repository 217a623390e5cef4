package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/testutil"
)

// trackerClock pins the tracker to a Wednesday mid-March so month keys
// are stable regardless of when the tests run.
func trackerClock() time.Time {
	return time.Date(2025, time.March, 12, 15, 30, 0, 0, time.Local)
}

func newTestTracker(t *testing.T) (*Tracker, *testutil.TestDB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	resolver := nlp.NewDateResolverAt(trackerClock)
	return NewTracker(db.Storage, db.Storage, resolver), db
}

func TestTracker_SetAndGet(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	assert.False(t, tracker.IsSet(ctx, ""))

	require.True(t, tracker.Set(ctx, 5000, ""))
	require.True(t, tracker.IsSet(ctx, ""))

	budget := tracker.Get(ctx, "")
	require.NotNil(t, budget)
	assert.Equal(t, 5000.0, budget.Amount)
	assert.Equal(t, "2025-03", budget.Month)
}

func TestTracker_SetRejectsNonPositiveAmount(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 3000, ""))

	assert.False(t, tracker.Set(ctx, 0, ""))
	assert.False(t, tracker.Set(ctx, -5, ""))

	budget := tracker.Get(ctx, "")
	require.NotNil(t, budget)
	assert.Equal(t, 3000.0, budget.Amount, "rejected set must leave the budget unchanged")
}

func TestTracker_UpdateReplacesAmount(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 2000, ""))
	require.True(t, tracker.Update(ctx, 4500, ""))

	budget := tracker.Get(ctx, "")
	require.NotNil(t, budget)
	assert.Equal(t, 4500.0, budget.Amount)
}

func TestTracker_ExplicitMonth(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 1200, "2025-01"))

	assert.True(t, tracker.IsSet(ctx, "2025-01"))
	assert.False(t, tracker.IsSet(ctx, ""), "explicit month must not touch the current month")

	budget := tracker.Get(ctx, "2025-01")
	require.NotNil(t, budget)
	assert.Equal(t, "2025-01", budget.Month)
}

func TestTracker_Delete(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	assert.False(t, tracker.Delete(ctx, ""), "deleting a missing budget reports failure")

	require.True(t, tracker.Set(ctx, 2500, ""))
	require.True(t, tracker.Delete(ctx, ""))

	assert.False(t, tracker.IsSet(ctx, ""))
	assert.False(t, tracker.Delete(ctx, ""))
}

func TestTracker_Months(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	assert.Empty(t, tracker.Months(ctx))

	require.True(t, tracker.Set(ctx, 1000, "2025-01"))
	require.True(t, tracker.Set(ctx, 2000, "2025-03"))
	require.True(t, tracker.Set(ctx, 1500, "2025-02"))

	assert.Equal(t, []string{"2025-03", "2025-02", "2025-01"}, tracker.Months(ctx))
}

func TestTracker_Status(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 1000, ""))
	db.SeedExpense(300, "groceries", "Food & Dining", trackerClock())
	db.SeedExpense(100, "cab", "Transport", trackerClock().AddDate(0, 0, -2))

	status := tracker.Status(ctx, "")
	require.NotNil(t, status.Budget)
	assert.Equal(t, "2025-03", status.Month)
	assert.Equal(t, 400.0, status.TotalSpent)
	assert.Equal(t, 600.0, status.Remaining)
	assert.InDelta(t, 40.0, status.PercentUsed, 0.001)
	assert.False(t, status.IsOverBudget)
}

func TestTracker_StatusOverBudget(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 500, ""))
	db.SeedExpense(800, "new phone", "Shopping", trackerClock())

	status := tracker.Status(ctx, "")
	assert.Equal(t, 800.0, status.TotalSpent)
	assert.Equal(t, -300.0, status.Remaining)
	assert.InDelta(t, 160.0, status.PercentUsed, 0.001)
	assert.True(t, status.IsOverBudget)
}

func TestTracker_StatusWithoutBudget(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	db.SeedExpense(250, "dinner", "Food & Dining", trackerClock())

	status := tracker.Status(ctx, "")
	assert.Nil(t, status.Budget)
	assert.Equal(t, 250.0, status.TotalSpent)
	assert.Equal(t, -250.0, status.Remaining)
	assert.Zero(t, status.PercentUsed)
}

func TestTracker_StatusIgnoresOtherMonths(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	require.True(t, tracker.Set(ctx, 1000, ""))
	db.SeedExpense(700, "rent share", "Bills & Utilities", trackerClock().AddDate(0, -1, 0))

	status := tracker.Status(ctx, "")
	assert.Zero(t, status.TotalSpent)
	assert.Equal(t, 1000.0, status.Remaining)
}

func TestTracker_MonthlyComparison(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	lastMonth := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.Local)
	db.SeedExpense(400, "groceries", "Food & Dining", lastMonth)
	db.SeedExpense(600, "dinner out", "Food & Dining", trackerClock())

	comparison := tracker.MonthlyComparison(ctx, "")
	assert.Equal(t, 600.0, comparison.CurrentMonth.TotalSpent)
	assert.Equal(t, 400.0, comparison.PreviousMonth.TotalSpent)
	assert.Equal(t, 200.0, comparison.SpendingChange)
	assert.InDelta(t, 50.0, comparison.PercentChange, 0.001)
}

func TestTracker_MonthlyComparisonZeroBase(t *testing.T) {
	tracker, db := newTestTracker(t)
	ctx := context.Background()

	db.SeedExpense(600, "dinner out", "Food & Dining", trackerClock())

	comparison := tracker.MonthlyComparison(ctx, "")
	assert.Equal(t, 600.0, comparison.SpendingChange)
	assert.Zero(t, comparison.PercentChange, "no previous spending means no percentage")
}

func TestTracker_CurrentMonthKey(t *testing.T) {
	tracker, _ := newTestTracker(t)

	assert.Equal(t, "2025-03", tracker.CurrentMonthKey())
}

func TestTracker_SubscribeDeliversOnSet(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	updates := tracker.Subscribe()
	require.True(t, tracker.Set(ctx, 3000, ""))

	select {
	case budget := <-updates:
		require.NotNil(t, budget)
		assert.Equal(t, 3000.0, budget.Amount)
	case <-time.After(time.Second):
		t.Fatal("no budget update delivered")
	}

	require.True(t, tracker.Delete(ctx, ""))
	select {
	case budget := <-updates:
		assert.Nil(t, budget, "deleting the only budget clears the current budget")
	case <-time.After(time.Second):
		t.Fatal("no budget update delivered after delete")
	}
}

func TestTracker_SubscribeKeepsLatest(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	updates := tracker.Subscribe()
	require.True(t, tracker.Set(ctx, 1000, ""))
	require.True(t, tracker.Set(ctx, 2000, ""))

	select {
	case budget := <-updates:
		require.NotNil(t, budget)
		assert.Equal(t, 2000.0, budget.Amount, "slow consumers see the latest value")
	case <-time.After(time.Second):
		t.Fatal("no budget update delivered")
	}
}
