package assistant

import (
	"context"
	"log/slog"
	"sort"

	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/service"
)

// Reporter composes aggregate reads over the expense store, scoped by
// resolved date ranges. Storage failures are caught here, logged, and
// converted to safe defaults (empty list / zero) so the query pipeline
// never surfaces a raw error to the user.
type Reporter struct {
	expenses service.ExpenseStore
	resolver *nlp.DateResolver
}

// NewReporter creates a reporter over the given store.
func NewReporter(expenses service.ExpenseStore, resolver *nlp.DateResolver) *Reporter {
	return &Reporter{expenses: expenses, resolver: resolver}
}

// TotalAmount returns all-time spending.
func (r *Reporter) TotalAmount(ctx context.Context) float64 {
	total, err := r.expenses.TotalAmount(ctx)
	if err != nil {
		slog.Error("failed to get total amount", "error", err)
		return 0
	}
	return total
}

// TotalCurrentMonth returns this calendar month's spending.
func (r *Reporter) TotalCurrentMonth(ctx context.Context) float64 {
	return r.totalInRange(ctx, r.resolver.CurrentMonthRange())
}

// TotalLastMonth returns the previous calendar month's spending.
func (r *Reporter) TotalLastMonth(ctx context.Context) float64 {
	return r.totalInRange(ctx, r.resolver.LastMonthRange())
}

// TotalForMonth returns spending for a "YYYY-MM" month key.
func (r *Reporter) TotalForMonth(ctx context.Context, month string) float64 {
	rng, err := r.resolver.MonthKeyRange(month)
	if err != nil {
		slog.Warn("invalid month key", "month", month, "error", err)
		return 0
	}
	return r.totalInRange(ctx, rng)
}

// CountCurrentMonth returns this month's transaction count.
func (r *Reporter) CountCurrentMonth(ctx context.Context) int {
	return r.countInRange(ctx, r.resolver.CurrentMonthRange())
}

// CountLastMonth returns last month's transaction count.
func (r *Reporter) CountLastMonth(ctx context.Context) int {
	return r.countInRange(ctx, r.resolver.LastMonthRange())
}

// CountCurrentWeek returns this week's transaction count.
func (r *Reporter) CountCurrentWeek(ctx context.Context) int {
	return r.countInRange(ctx, r.resolver.CurrentWeekRange())
}

// ExpensesCurrentMonth lists this month's expenses, newest first.
func (r *Reporter) ExpensesCurrentMonth(ctx context.Context) []model.Expense {
	return r.expensesInRange(ctx, r.resolver.CurrentMonthRange())
}

// ExpensesLastMonth lists last month's expenses.
func (r *Reporter) ExpensesLastMonth(ctx context.Context) []model.Expense {
	return r.expensesInRange(ctx, r.resolver.LastMonthRange())
}

// ExpensesCurrentWeek lists this week's expenses.
func (r *Reporter) ExpensesCurrentWeek(ctx context.Context) []model.Expense {
	return r.expensesInRange(ctx, r.resolver.CurrentWeekRange())
}

// ExpensesToday lists today's expenses.
func (r *Reporter) ExpensesToday(ctx context.Context) []model.Expense {
	return r.expensesInRange(ctx, r.resolver.TodayRange())
}

// ExpensesByCategory lists a category's expenses.
func (r *Reporter) ExpensesByCategory(ctx context.Context, category string) []model.Expense {
	expenses, err := r.expenses.ExpensesByCategory(ctx, category)
	if err != nil {
		slog.Error("failed to get expenses by category", "category", category, "error", err)
		return nil
	}
	return expenses
}

// ExpensesInRange lists expenses inside a resolved range.
func (r *Reporter) ExpensesInRange(ctx context.Context, rng nlp.DateRange) []model.Expense {
	return r.expensesInRange(ctx, rng)
}

// AverageByCategory returns the mean transaction amount for a category.
func (r *Reporter) AverageByCategory(ctx context.Context, category string) float64 {
	avg, err := r.expenses.AverageByCategory(ctx, category)
	if err != nil {
		slog.Error("failed to get category average", "category", category, "error", err)
		return 0
	}
	return avg
}

// BiggestExpenses returns the top-N expenses by amount.
func (r *Reporter) BiggestExpenses(ctx context.Context, limit int) []model.Expense {
	expenses, err := r.expenses.LargestExpenses(ctx, 0, limit)
	if err != nil {
		slog.Error("failed to get biggest expenses", "error", err)
		return nil
	}
	return expenses
}

// TopCategories returns the top-N categories by total spend.
func (r *Reporter) TopCategories(ctx context.Context, limit int) []model.CategoryTotal {
	totals, err := r.expenses.TopCategories(ctx, limit)
	if err != nil {
		slog.Error("failed to get top categories", "error", err)
		return nil
	}
	return totals
}

// CategoryStatistics aggregates per-category total, count and average,
// sorted by total descending.
func (r *Reporter) CategoryStatistics(ctx context.Context) []model.CategoryStatistic {
	counts, err := r.expenses.CountByCategory(ctx)
	if err != nil {
		slog.Error("failed to get category counts", "error", err)
		return nil
	}
	totals, err := r.expenses.TopCategories(ctx, 50)
	if err != nil {
		slog.Error("failed to get category totals", "error", err)
		return nil
	}

	totalFor := make(map[string]float64, len(totals))
	for _, t := range totals {
		totalFor[t.Category] = t.Total
	}

	stats := make([]model.CategoryStatistic, 0, len(counts))
	for _, c := range counts {
		stats = append(stats, model.CategoryStatistic{
			Category:         c.Category,
			TotalAmount:      totalFor[c.Category],
			TransactionCount: c.Count,
			AverageAmount:    r.AverageByCategory(ctx, c.Category),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalAmount > stats[j].TotalAmount
	})
	return stats
}

// SpendingInsights summarizes the current month against the last one.
// The monthly change is zero when last month's total is zero.
func (r *Reporter) SpendingInsights(ctx context.Context) model.SpendingInsights {
	currentTotal := r.TotalCurrentMonth(ctx)
	lastTotal := r.TotalLastMonth(ctx)
	count := r.CountCurrentMonth(ctx)

	var change float64
	if lastTotal > 0 {
		change = (currentTotal - lastTotal) / lastTotal * 100
	}

	var average float64
	if count > 0 {
		average = currentTotal / float64(count)
	}

	return model.SpendingInsights{
		CurrentMonthTotal:     currentTotal,
		LastMonthTotal:        lastTotal,
		MonthlyChange:         change,
		TransactionCount:      count,
		AveragePerTransaction: average,
		BiggestExpenses:       r.BiggestExpenses(ctx, 3),
		TopCategories:         r.TopCategories(ctx, 3),
		CategoryStatistics:    r.CategoryStatistics(ctx),
	}
}

// DateInsights summarizes spending inside one resolved range: totals,
// extremes and a category breakdown sorted by spend.
func (r *Reporter) DateInsights(ctx context.Context, rng nlp.DateRange) model.DateInsights {
	expenses := r.expensesInRange(ctx, rng)

	insights := model.DateInsights{
		StartMillis:      rng.StartMillis,
		EndMillis:        rng.EndMillis,
		TransactionCount: len(expenses),
		Expenses:         expenses,
	}

	byCategory := make(map[string]float64)
	for i := range expenses {
		e := &expenses[i]
		insights.TotalSpent += e.Amount
		byCategory[e.Category] += e.Amount

		if insights.LargestExpense == nil || e.Amount > insights.LargestExpense.Amount {
			insights.LargestExpense = e
		}
		if insights.SmallestExpense == nil || e.Amount < insights.SmallestExpense.Amount {
			insights.SmallestExpense = e
		}
	}

	if len(expenses) > 0 {
		insights.AveragePerTransaction = insights.TotalSpent / float64(len(expenses))
	}

	for category, total := range byCategory {
		insights.CategoryBreakdown = append(insights.CategoryBreakdown, model.CategoryTotal{
			Category: category,
			Total:    total,
		})
	}
	sort.Slice(insights.CategoryBreakdown, func(i, j int) bool {
		return insights.CategoryBreakdown[i].Total > insights.CategoryBreakdown[j].Total
	})

	return insights
}

func (r *Reporter) totalInRange(ctx context.Context, rng nlp.DateRange) float64 {
	total, err := r.expenses.TotalByDateRange(ctx, rng.StartMillis, rng.EndMillis)
	if err != nil {
		slog.Error("failed to total date range", "error", err)
		return 0
	}
	return total
}

func (r *Reporter) countInRange(ctx context.Context, rng nlp.DateRange) int {
	count, err := r.expenses.CountByDateRange(ctx, rng.StartMillis, rng.EndMillis)
	if err != nil {
		slog.Error("failed to count date range", "error", err)
		return 0
	}
	return count
}

func (r *Reporter) expensesInRange(ctx context.Context, rng nlp.DateRange) []model.Expense {
	expenses, err := r.expenses.ExpensesByDateRange(ctx, rng.StartMillis, rng.EndMillis)
	if err != nil {
		slog.Error("failed to get expenses in range", "error", err)
		return nil
	}
	return expenses
}
