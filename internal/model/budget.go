package model

import "time"

// Budget is a monthly spending limit keyed by a "YYYY-MM" month string.
// At most one budget exists per month key.
type Budget struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Month     string
	Amount    float64
}

// BudgetStatus reports spending against a month's budget. Budget is nil
// when no budget has been set for the month.
type BudgetStatus struct {
	Budget       *Budget
	Month        string
	TotalSpent   float64
	Remaining    float64
	PercentUsed  float64
	IsOverBudget bool
}

// MonthlyComparison contrasts spending across two consecutive months.
type MonthlyComparison struct {
	CurrentMonth   BudgetStatus
	PreviousMonth  BudgetStatus
	SpendingChange float64
	PercentChange  float64
}
