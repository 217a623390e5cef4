package model

// SpendingInsights summarizes the current month against the previous one.
// MonthlyChange is a percentage and is zero when the previous month total
// is zero, so callers never see NaN in rendered text.
type SpendingInsights struct {
	BiggestExpenses       []Expense
	TopCategories         []CategoryTotal
	CategoryStatistics    []CategoryStatistic
	CurrentMonthTotal     float64
	LastMonthTotal        float64
	MonthlyChange         float64
	AveragePerTransaction float64
	TransactionCount      int
}

// DateInsights summarizes spending inside one resolved date range.
type DateInsights struct {
	LargestExpense        *Expense
	SmallestExpense       *Expense
	CategoryBreakdown     []CategoryTotal
	Expenses              []Expense
	StartMillis           int64
	EndMillis             int64
	TotalSpent            float64
	AveragePerTransaction float64
	TransactionCount      int
}
