package assistant

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/amoghbhat/spence/internal/budget"
	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
)

// QueryEngine answers analytic questions over the expense store. Like
// the intent router it is a priority-ordered keyword classifier: the
// first matching handler wins, and an unrecognized question falls
// through to a help message rather than an error.
type QueryEngine struct {
	reporter *Reporter
	tracker  *budget.Tracker
	resolver *nlp.DateResolver
}

// NewQueryEngine builds a query engine over the given reporter and
// budget tracker.
func NewQueryEngine(reporter *Reporter, tracker *budget.Tracker, resolver *nlp.DateResolver) *QueryEngine {
	return &QueryEngine{reporter: reporter, tracker: tracker, resolver: resolver}
}

var (
	bareNumberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	setBudgetPattern  = regexp.MustCompile(`set.*budget.*\d+`)
	updateBudgetExpr  = regexp.MustCompile(`(?:update|change|modify).*budget.*\d+`)
	deleteBudgetExpr  = regexp.MustCompile(`(?:delete|remove|clear).*budget`)
)

// Answer dispatches a query to the first handler whose keywords it
// contains and renders a deterministic natural-language response.
func (q *QueryEngine) Answer(ctx context.Context, query string) model.QueryResult {
	normalized := strings.ToLower(strings.TrimSpace(query))

	switch {
	case containsAny(normalized, "how many", "count", "number of", "transactions"):
		return q.answerCount(ctx, normalized)
	case containsAny(normalized, "average", "typical", "usual", "mean"):
		return q.answerAverage(ctx, normalized)
	case containsAny(normalized, "biggest", "largest", "highest", "most expensive", "top"):
		return q.answerLargest(ctx, normalized)
	case containsAny(normalized, "statistics", "stats", "breakdown", "analysis", "report"):
		return q.answerStatistics(ctx)
	case containsAny(normalized, "insights", "summary", "overview"):
		return q.answerInsights(ctx)
	case containsAny(normalized, "total", "how much", "spent", "spending"):
		return q.answerTotal(ctx, normalized)
	case containsAny(normalized, "food", "transport", "shopping", "entertainment", "bills", "medical"):
		return q.answerCategory(ctx, normalized)
	case containsAny(normalized, "last month", "previous month"):
		return q.answerLastMonth(ctx, normalized)
	case containsAny(normalized, "this month", "current month"):
		return q.answerThisMonth(ctx, normalized)
	case containsAny(normalized, "this week", "current week"):
		return q.answerThisWeek(ctx)
	case strings.Contains(normalized, "today"):
		return q.answerToday(ctx)
	case containsAny(normalized, "compare", "comparison", "vs", "versus"):
		return q.answerComparison(ctx)
	case containsAny(normalized, "budget", "limit", "goal", "target"):
		return q.answerBudget(ctx, normalized)
	case containsAny(normalized, "trend", "pattern", "increasing", "decreasing"):
		return q.answerTrend(ctx)
	default:
		if rng, ok := q.resolver.Resolve(normalized); ok {
			return q.answerDateRange(ctx, rng)
		}
		return model.QueryResult{Answer: helpMessage}
	}
}

func (q *QueryEngine) answerCount(ctx context.Context, query string) model.QueryResult {
	switch {
	case strings.Contains(query, "this month"):
		return answerf("You made %d transactions this month.", q.reporter.CountCurrentMonth(ctx))
	case strings.Contains(query, "last month"):
		return answerf("You made %d transactions last month.", q.reporter.CountLastMonth(ctx))
	case strings.Contains(query, "this week"):
		return answerf("You made %d transactions this week.", q.reporter.CountCurrentWeek(ctx))
	case strings.Contains(query, "food"):
		expenses := q.reporter.ExpensesByCategory(ctx, "Food & Dining")
		return answerf("You made %d food-related transactions.", len(expenses))
	case strings.Contains(query, "transport"):
		expenses := q.reporter.ExpensesByCategory(ctx, "Transport")
		return answerf("You made %d transport-related transactions.", len(expenses))
	case strings.Contains(query, "shopping"):
		expenses := q.reporter.ExpensesByCategory(ctx, "Shopping")
		return answerf("You made %d shopping transactions.", len(expenses))
	default:
		return answerf("You made %d transactions this month.", q.reporter.CountCurrentMonth(ctx))
	}
}

func (q *QueryEngine) answerAverage(ctx context.Context, query string) model.QueryResult {
	for _, pair := range [][2]string{
		{"food", "Food & Dining"},
		{"transport", "Transport"},
		{"shopping", "Shopping"},
		{"entertainment", "Entertainment"},
	} {
		if strings.Contains(query, pair[0]) {
			average := q.reporter.AverageByCategory(ctx, pair[1])
			return answerf("Your average %s expense is ₹%.2f per transaction.", pair[0], average)
		}
	}
	insights := q.reporter.SpendingInsights(ctx)
	return answerf("Your average expense per transaction is ₹%.2f.", insights.AveragePerTransaction)
}

func (q *QueryEngine) answerLargest(ctx context.Context, query string) model.QueryResult {
	limit := 5
	if n, ok := extractNumber(query); ok {
		limit = int(n)
	} else if containsAny(query, "top 3", "biggest 3") {
		limit = 3
	} else if containsAny(query, "top 10", "biggest 10") {
		limit = 10
	}

	biggest := q.reporter.BiggestExpenses(ctx, limit)
	if len(biggest) == 0 {
		return model.QueryResult{Answer: "No expenses found."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your top %d expenses:\n", limit)
	for i, expense := range biggest {
		fmt.Fprintf(&b, "%d. ₹%.2f - %s (%s)\n", i+1, expense.Amount, expense.Description, expense.Category)
	}
	return model.QueryResult{Answer: strings.TrimRight(b.String(), "\n"), Expenses: biggest}
}

func (q *QueryEngine) answerStatistics(ctx context.Context) model.QueryResult {
	stats := q.reporter.CategoryStatistics(ctx)
	if len(stats) == 0 {
		return model.QueryResult{Answer: "No expense statistics available."}
	}
	if len(stats) > 5 {
		stats = stats[:5]
	}

	var b strings.Builder
	b.WriteString("📊 Your spending statistics:\n\n")
	for _, stat := range stats {
		fmt.Fprintf(&b, "💰 %s:\n", stat.Category)
		fmt.Fprintf(&b, "   Total: ₹%.2f\n", stat.TotalAmount)
		fmt.Fprintf(&b, "   Transactions: %d\n", stat.TransactionCount)
		fmt.Fprintf(&b, "   Average: ₹%.2f\n\n", stat.AverageAmount)
	}
	return model.QueryResult{Answer: strings.TrimSpace(b.String())}
}

func (q *QueryEngine) answerInsights(ctx context.Context) model.QueryResult {
	insights := q.reporter.SpendingInsights(ctx)

	var changeText string
	switch {
	case insights.MonthlyChange > 0:
		changeText = fmt.Sprintf("increased by %.1f%%", insights.MonthlyChange)
	case insights.MonthlyChange < 0:
		changeText = fmt.Sprintf("decreased by %.1f%%", math.Abs(insights.MonthlyChange))
	default:
		changeText = "remained the same"
	}

	var b strings.Builder
	b.WriteString("📈 Your Monthly Insights:\n\n")
	fmt.Fprintf(&b, "💰 This month: ₹%.2f\n", insights.CurrentMonthTotal)
	fmt.Fprintf(&b, "📊 Spending has %s compared to last month\n", changeText)
	fmt.Fprintf(&b, "🔢 %d transactions this month\n", insights.TransactionCount)
	fmt.Fprintf(&b, "📱 Average per transaction: ₹%.2f\n\n", insights.AveragePerTransaction)

	if len(insights.BiggestExpenses) > 0 {
		top := insights.BiggestExpenses[0]
		fmt.Fprintf(&b, "🏆 Biggest expense: ₹%.2f - %s\n", top.Amount, top.Description)
	}
	if len(insights.TopCategories) > 0 {
		top := insights.TopCategories[0]
		fmt.Fprintf(&b, "🎯 Top spending category: %s (₹%.2f)\n", top.Category, top.Total)
	}

	b.WriteString("\n💡 Smart Recommendations:\n")
	switch {
	case insights.MonthlyChange > 20:
		b.WriteString("⚠️ Consider reviewing your budget as spending increased significantly.\n")
	case insights.MonthlyChange < -20:
		b.WriteString("🎉 Great job on reducing your expenses!\n")
	case insights.AveragePerTransaction > 500:
		b.WriteString("💭 Your average transaction is quite high. Consider smaller, frequent purchases.\n")
	}
	return model.QueryResult{Answer: strings.TrimSpace(b.String())}
}

func (q *QueryEngine) answerTotal(ctx context.Context, query string) model.QueryResult {
	switch {
	case strings.Contains(query, "last month"):
		total := q.reporter.TotalLastMonth(ctx)
		count := q.reporter.CountLastMonth(ctx)
		return answerf("Last month you spent ₹%.2f across %d transactions.", total, count)
	case strings.Contains(query, "this month"):
		total := q.reporter.TotalCurrentMonth(ctx)
		count := q.reporter.CountCurrentMonth(ctx)
		return answerf("This month you've spent ₹%.2f across %d transactions.", total, count)
	case strings.Contains(query, "this week"):
		expenses := q.reporter.ExpensesCurrentWeek(ctx)
		return answerf("This week you've spent ₹%.2f across %d transactions.", sumAmounts(expenses), len(expenses))
	default:
		return answerf("Your total spending is ₹%.2f across all transactions.", q.reporter.TotalAmount(ctx))
	}
}

func (q *QueryEngine) answerCategory(ctx context.Context, query string) model.QueryResult {
	category := extractCategoryFromQuery(query)
	expenses := q.reporter.ExpensesByCategory(ctx, category)
	if len(expenses) == 0 {
		return answerf("No expenses found for %s category.", category)
	}
	average := q.reporter.AverageByCategory(ctx, category)

	var b strings.Builder
	fmt.Fprintf(&b, "💰 %s Spending:\n", category)
	fmt.Fprintf(&b, "Total: ₹%.2f\n", sumAmounts(expenses))
	fmt.Fprintf(&b, "Transactions: %d\n", len(expenses))
	fmt.Fprintf(&b, "Average: ₹%.2f\n\n", average)
	b.WriteString("Recent transactions:\n")

	recent := expenses
	if len(recent) > 3 {
		recent = recent[:3]
	}
	for _, expense := range recent {
		fmt.Fprintf(&b, "• ₹%.2f - %s\n", expense.Amount, expense.Description)
	}
	if len(expenses) > 3 {
		fmt.Fprintf(&b, "... and %d more\n", len(expenses)-3)
	}
	return model.QueryResult{Answer: strings.TrimSpace(b.String()), Expenses: expenses}
}

func (q *QueryEngine) answerLastMonth(ctx context.Context, query string) model.QueryResult {
	expenses := q.reporter.ExpensesLastMonth(ctx)
	if strings.Contains(query, "food") {
		food := filterByCategoryWord(expenses, "food")
		return answerf("Last month you spent ₹%.2f on food across %d transactions.", sumAmounts(food), len(food))
	}
	return answerf("Last month you spent ₹%.2f across %d transactions.", sumAmounts(expenses), len(expenses))
}

func (q *QueryEngine) answerThisMonth(ctx context.Context, query string) model.QueryResult {
	expenses := q.reporter.ExpensesCurrentMonth(ctx)
	if strings.Contains(query, "food") {
		food := filterByCategoryWord(expenses, "food")
		return answerf("This month you've spent ₹%.2f on food across %d transactions.", sumAmounts(food), len(food))
	}
	return answerf("This month you've spent ₹%.2f across %d transactions.", sumAmounts(expenses), len(expenses))
}

func (q *QueryEngine) answerThisWeek(ctx context.Context) model.QueryResult {
	expenses := q.reporter.ExpensesCurrentWeek(ctx)
	return answerf("This week you've spent ₹%.2f across %d transactions.", sumAmounts(expenses), len(expenses))
}

func (q *QueryEngine) answerToday(ctx context.Context) model.QueryResult {
	expenses := q.reporter.ExpensesToday(ctx)
	if len(expenses) == 0 {
		return model.QueryResult{Answer: "You haven't made any expenses today."}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Today you've spent ₹%.2f:\n", sumAmounts(expenses))
	for _, expense := range expenses {
		fmt.Fprintf(&b, "• ₹%.2f - %s\n", expense.Amount, expense.Description)
	}
	return model.QueryResult{Answer: strings.TrimRight(b.String(), "\n"), Expenses: expenses}
}

func (q *QueryEngine) answerComparison(ctx context.Context) model.QueryResult {
	current := q.reporter.TotalCurrentMonth(ctx)
	last := q.reporter.TotalLastMonth(ctx)

	difference := current - last
	var percentChange float64
	if last > 0 {
		percentChange = (difference / last) * 100
	}

	var comparisonText string
	switch {
	case difference > 0:
		comparisonText = fmt.Sprintf("increased by ₹%.2f (%.1f%%)", difference, percentChange)
	case difference < 0:
		comparisonText = fmt.Sprintf("decreased by ₹%.2f (%.1f%%)", math.Abs(difference), math.Abs(percentChange))
	default:
		comparisonText = "remained the same"
	}

	return answerf("📊 Monthly Comparison:\nThis month: ₹%.2f\nLast month: ₹%.2f\nYour spending has %s compared to last month.",
		current, last, comparisonText)
}

func (q *QueryEngine) answerBudget(ctx context.Context, query string) model.QueryResult {
	switch {
	case setBudgetPattern.MatchString(query):
		return q.setBudget(ctx, query)
	case updateBudgetExpr.MatchString(query):
		return q.updateBudget(ctx, query)
	case deleteBudgetExpr.MatchString(query):
		return q.deleteBudget(ctx)
	case strings.Contains(query, "last month"):
		return q.lastMonthBudgetStatus(ctx)
	case strings.Contains(query, "budget"):
		return q.currentBudgetStatus(ctx)
	default:
		return model.QueryResult{Answer: "I can help you manage budgets! Try:\n" +
			"• 'Set my budget to 5000 rupees'\n" +
			"• 'Update my budget to 7000'\n" +
			"• 'Delete my budget'\n" +
			"• 'Show my budget status'"}
	}
}

func (q *QueryEngine) setBudget(ctx context.Context, query string) model.QueryResult {
	amount, ok := extractNumber(query)
	if !ok {
		return model.QueryResult{Answer: "❌ Please specify a valid budget amount. Example: 'Set my budget to 5000 rupees'"}
	}
	if !q.tracker.Set(ctx, amount, "") {
		return model.QueryResult{Answer: "❌ Failed to set budget. Please try again."}
	}
	status := q.tracker.Status(ctx, "")
	return answerf("✅ Budget set to ₹%.2f for this month.\n\nCurrent spending: ₹%.2f\nRemaining: ₹%.2f",
		amount, status.TotalSpent, status.Remaining)
}

func (q *QueryEngine) updateBudget(ctx context.Context, query string) model.QueryResult {
	amount, ok := extractNumber(query)
	if !ok {
		return model.QueryResult{Answer: "❌ Please specify a valid amount. Example: 'Update my budget to 7000 rupees'"}
	}
	current := q.tracker.Get(ctx, "")
	if current == nil {
		return model.QueryResult{Answer: "💡 No budget exists to update. Set a budget first by saying:\n'Set my budget to 5000 rupees'"}
	}
	if !q.tracker.Update(ctx, amount, "") {
		return model.QueryResult{Answer: "❌ Failed to update budget. Please try again."}
	}

	status := q.tracker.Status(ctx, "")
	change := amount - current.Amount
	var changeText string
	if change > 0 {
		changeText = fmt.Sprintf("increased by ₹%.2f", change)
	} else {
		changeText = fmt.Sprintf("decreased by ₹%.2f", math.Abs(change))
	}
	return answerf("✅ Budget updated successfully!\n\nPrevious: ₹%.2f\nNew: ₹%.2f (%s)\n\nCurrent spending: ₹%.2f\nRemaining: ₹%.2f",
		current.Amount, amount, changeText, status.TotalSpent, status.Remaining)
}

func (q *QueryEngine) deleteBudget(ctx context.Context) model.QueryResult {
	current := q.tracker.Get(ctx, "")
	if current == nil {
		return model.QueryResult{Answer: "💡 No budget exists to delete."}
	}
	if !q.tracker.Delete(ctx, "") {
		return model.QueryResult{Answer: "❌ Failed to delete budget. Please try again."}
	}
	return answerf("🗑️ Budget deleted successfully!\n\nRemoved budget: ₹%.2f\nYou can set a new budget anytime by saying 'Set my budget to [amount]'",
		current.Amount)
}

func (q *QueryEngine) lastMonthBudgetStatus(ctx context.Context) model.QueryResult {
	lastMonth := q.resolver.PreviousMonthKey(q.resolver.CurrentMonthKey())
	status := q.tracker.Status(ctx, lastMonth)
	if status.Budget == nil {
		return model.QueryResult{Answer: "💡 No budget was set for last month."}
	}

	remainingLine := fmt.Sprintf("Remaining: ₹%.2f", status.Remaining)
	if status.IsOverBudget {
		remainingLine = fmt.Sprintf("Over budget by: ₹%.2f", math.Abs(status.Remaining))
	}
	return answerf("💰 Budget Status for %s:\nBudget: ₹%.2f\nSpent: ₹%.2f (%.1f%%)\n%s",
		nlp.MonthKeyName(lastMonth), status.Budget.Amount, status.TotalSpent, status.PercentUsed, remainingLine)
}

func (q *QueryEngine) currentBudgetStatus(ctx context.Context) model.QueryResult {
	status := q.tracker.Status(ctx, "")
	if status.Budget == nil {
		return model.QueryResult{Answer: "💡 No budget set for this month. Set one by saying:\n'Set my budget to 5000 rupees'"}
	}

	remainingLine := fmt.Sprintf("✅ Remaining: ₹%.2f", status.Remaining)
	if status.IsOverBudget {
		remainingLine = fmt.Sprintf("⚠️ Over budget by: ₹%.2f", math.Abs(status.Remaining))
	}
	return answerf("💰 Current Budget Status:\nBudget: ₹%.2f\nSpent: ₹%.2f (%.1f%%)\n%s",
		status.Budget.Amount, status.TotalSpent, status.PercentUsed, remainingLine)
}

func (q *QueryEngine) answerTrend(ctx context.Context) model.QueryResult {
	insights := q.reporter.SpendingInsights(ctx)
	stats := q.reporter.CategoryStatistics(ctx)
	if len(stats) > 3 {
		stats = stats[:3]
	}

	var b strings.Builder
	b.WriteString("📈 Spending Trends:\n\n")
	switch {
	case insights.MonthlyChange > 10:
		fmt.Fprintf(&b, "📊 Upward trend: Spending increased by %.1f%%\n", insights.MonthlyChange)
	case insights.MonthlyChange < -10:
		fmt.Fprintf(&b, "📉 Downward trend: Spending decreased by %.1f%%\n", math.Abs(insights.MonthlyChange))
	default:
		b.WriteString("➡️ Stable trend: Spending is relatively consistent\n")
	}

	b.WriteString("\nTop spending categories:\n")
	for _, stat := range stats {
		fmt.Fprintf(&b, "• %s: ₹%.2f (%d transactions)\n", stat.Category, stat.TotalAmount, stat.TransactionCount)
	}
	return model.QueryResult{Answer: strings.TrimSpace(b.String())}
}

// answerDateRange renders insights for a query that only carried an
// explicit date ("expenses on 5 march").
func (q *QueryEngine) answerDateRange(ctx context.Context, rng nlp.DateRange) model.QueryResult {
	insights := q.reporter.DateInsights(ctx, rng)
	day := time.UnixMilli(insights.StartMillis).Format("2 Jan 2006")
	if insights.TransactionCount == 0 {
		return answerf("You made no expenses on %s.", day)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Spending on %s:\n", day)
	fmt.Fprintf(&b, "Total: ₹%.2f across %d transactions\n", insights.TotalSpent, insights.TransactionCount)
	fmt.Fprintf(&b, "Average per transaction: ₹%.2f\n", insights.AveragePerTransaction)
	if insights.LargestExpense != nil {
		fmt.Fprintf(&b, "🏆 Largest: ₹%.2f - %s\n", insights.LargestExpense.Amount, insights.LargestExpense.Description)
	}
	if len(insights.CategoryBreakdown) > 0 {
		b.WriteString("\nBy category:\n")
		for _, entry := range insights.CategoryBreakdown {
			fmt.Fprintf(&b, "• %s: ₹%.2f\n", entry.Category, entry.Total)
		}
	}
	return model.QueryResult{Answer: strings.TrimSpace(b.String()), Expenses: insights.Expenses}
}

const helpMessage = `I can help you with various expense queries! Try asking:

📊 Totals & Spending:
• "How much did I spend this month?"
• "What's my total spending?"

🔢 Counts & Statistics:
• "How many transactions this week?"
• "Show me spending statistics"

📈 Insights & Analysis:
• "Give me spending insights"
• "What are my spending trends?"

🏆 Top Expenses:
• "Show me my biggest expenses"
• "What are my top 5 expenses?"

📂 Category Queries:
• "How much did I spend on food?"
• "Show me transport expenses"

📅 Time-based Queries:
• "Last month expenses"
• "This week's spending"

💰 Budget Management:
• "Set my budget to 5000 rupees"
• "Update my budget to 7000"
• "Delete my budget"
• "Show my budget status"

💡 Averages:
• "What's my average food expense?"
• "Average spending per transaction"`

func extractCategoryFromQuery(query string) string {
	switch {
	case strings.Contains(query, "food"):
		return "Food & Dining"
	case strings.Contains(query, "transport"):
		return "Transport"
	case strings.Contains(query, "shopping"):
		return "Shopping"
	case strings.Contains(query, "entertainment"):
		return "Entertainment"
	case strings.Contains(query, "bills"):
		return "Bills & Utilities"
	case strings.Contains(query, "medical"):
		return "Health & Medical"
	case strings.Contains(query, "education"):
		return "Education"
	case strings.Contains(query, "personal"):
		return "Personal Care"
	case strings.Contains(query, "gifts"):
		return "Gifts & Donations"
	default:
		return model.FallbackCategory
	}
}

func extractNumber(text string) (float64, bool) {
	match := bareNumberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func answerf(format string, args ...any) model.QueryResult {
	return model.QueryResult{Answer: fmt.Sprintf(format, args...)}
}

func sumAmounts(expenses []model.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

func filterByCategoryWord(expenses []model.Expense, word string) []model.Expense {
	var filtered []model.Expense
	for _, expense := range expenses {
		if strings.Contains(strings.ToLower(expense.Category), word) {
			filtered = append(filtered, expense)
		}
	}
	return filtered
}
