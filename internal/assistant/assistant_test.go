package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoghbhat/spence/internal/budget"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/testutil"
)

// assistantClock pins processing to a Wednesday mid-March so month and
// week windows are stable regardless of when the tests run.
func assistantClock() time.Time {
	return time.Date(2025, time.March, 12, 15, 30, 0, 0, time.Local)
}

func newTestAssistant(t *testing.T) (*Assistant, *testutil.TestDB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	resolver := nlp.NewDateResolverAt(assistantClock)
	tracker := budget.NewTracker(db.Storage, db.Storage, resolver)

	a := New(db.Storage, tracker, resolver)
	a.now = assistantClock
	return a, db
}

func TestProcess_AddExpense(t *testing.T) {
	a, _ := newTestAssistant(t)

	result := a.Process(context.Background(), "I bought coffee for 50 rupees")

	require.Equal(t, model.ResultExpenseAdded, result.Kind)
	require.NotNil(t, result.Expense)
	assert.Equal(t, 50.0, result.Expense.Amount)
	assert.Contains(t, result.Expense.Description, "coffee")
	assert.Equal(t, "Food & Dining", result.Expense.Category)
	assert.NotZero(t, result.Expense.ID)
}

func TestProcess_AddExpensePersists(t *testing.T) {
	a, db := newTestAssistant(t)
	ctx := context.Background()

	result := a.Process(ctx, "paid 350 for groceries")
	require.Equal(t, model.ResultExpenseAdded, result.Kind)

	expenses, err := db.Storage.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 350.0, expenses[0].Amount)
}

func TestProcess_AddCategory(t *testing.T) {
	a, db := newTestAssistant(t)
	ctx := context.Background()

	result := a.Process(ctx, "Add fitness to the category")

	require.Equal(t, model.ResultCategoryAdded, result.Kind)
	assert.Equal(t, "Fitness", result.CategoryName)

	category := db.MustCategory("Fitness")
	assert.Equal(t, []string{"fitness", "fitnesss", "fitn"}, category.Keywords)
	assert.False(t, category.IsDefault)
}

func TestProcess_AddCategoryWithoutName(t *testing.T) {
	a, _ := newTestAssistant(t)

	result := a.Process(context.Background(), "add a new thing to my category list")

	require.Equal(t, model.ResultError, result.Kind)
	assert.Equal(t, "Failed to add category. Please try again.", result.Message)
}

func TestProcess_QueryAnswer(t *testing.T) {
	a, db := newTestAssistant(t)

	db.SeedExpense(200, "lunch", "Food & Dining", assistantClock())
	db.SeedExpense(300, "cab home", "Transport", assistantClock())

	result := a.Process(context.Background(), "How much did I spend this month?")

	require.Equal(t, model.ResultQueryAnswer, result.Kind)
	assert.Equal(t, "This month you've spent ₹500.00 across 2 transactions.", result.Answer)
}

func TestProcess_QueryOutranksExpense(t *testing.T) {
	a, db := newTestAssistant(t)

	db.SeedExpense(120, "pizza", "Food & Dining", assistantClock())

	// Readable as an expense too, but query detection wins.
	result := a.Process(context.Background(), "how much did I spend on food")

	require.Equal(t, model.ResultQueryAnswer, result.Kind)
	assert.Equal(t, "Your total spending is ₹120.00 across all transactions.", result.Answer)
}

func TestProcess_UnrecognizedFallsBackToHelp(t *testing.T) {
	a, _ := newTestAssistant(t)

	result := a.Process(context.Background(), "hello")

	require.Equal(t, model.ResultQueryAnswer, result.Kind)
	assert.Equal(t, helpMessage, result.Answer)
}

func TestProcess_InvalidExpenseInput(t *testing.T) {
	a, _ := newTestAssistant(t)

	// Detected as an expense but no amount survives extraction.
	result := a.Process(context.Background(), "paid 0 for parking")

	assert.Equal(t, model.ResultInvalidInput, result.Kind)
}

func TestExtractCategoryName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"add to the category", "add fitness to the category", "Fitness"},
		{"add category", "add travel category", "Travel"},
		{"create category", "create Gym category", "Gym"},
		{"new category", "new category pets", "Pets"},
		{"lowercased rest", "add BOOKS category", "Books"},
		{"no match", "make me a sandwich", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCategoryName(tt.input))
		})
	}
}

func TestGenerateCategoryKeywords(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"long name gets prefix", "Fitness", []string{"fitness", "fitnesss", "fitn"}},
		{"short name skips prefix", "Gym", []string{"gym", "gyms"}},
		{"four letters skips prefix", "Pets", []string{"pets", "petss"}},
		{"five letters gets prefix", "Books", []string{"books", "bookss", "book"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateCategoryKeywords(tt.category))
		})
	}
}
