// Package budget implements per-month budget tracking and status
// computation on top of the budget and expense stores.
package budget

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amoghbhat/spence/internal/model"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/service"
)

// Tracker provides month-keyed budget CRUD and status computation.
// Validation failures return false and log a warning; they never
// propagate as errors past this boundary.
type Tracker struct {
	budgets     service.BudgetStore
	expenses    service.ExpenseStore
	resolver    *nlp.DateResolver
	subscribers []chan *model.Budget
	mu          sync.Mutex
}

// NewTracker creates a budget tracker.
func NewTracker(budgets service.BudgetStore, expenses service.ExpenseStore, resolver *nlp.DateResolver) *Tracker {
	return &Tracker{budgets: budgets, expenses: expenses, resolver: resolver}
}

// Set stores a budget for the month ("" means the current month).
// Non-positive amounts are rejected with no change persisted.
func (t *Tracker) Set(ctx context.Context, amount float64, month string) bool {
	if amount <= 0 {
		slog.Warn("rejected invalid budget amount", "amount", amount)
		return false
	}

	target := t.targetMonth(month)
	if err := t.budgets.SaveBudget(ctx, amount, target); err != nil {
		slog.Error("failed to save budget", "month", target, "error", err)
		return false
	}

	t.notify(ctx)
	return true
}

// Update replaces a month's budget; same semantics as Set.
func (t *Tracker) Update(ctx context.Context, amount float64, month string) bool {
	return t.Set(ctx, amount, month)
}

// Get returns the budget for a month (current month when ""), or nil.
func (t *Tracker) Get(ctx context.Context, month string) *model.Budget {
	b, err := t.budgets.Budget(ctx, t.targetMonth(month))
	if err != nil {
		slog.Error("failed to get budget", "month", month, "error", err)
		return nil
	}
	return b
}

// IsSet reports whether a budget exists for the month.
func (t *Tracker) IsSet(ctx context.Context, month string) bool {
	return t.Get(ctx, month) != nil
}

// Delete removes a month's budget, clearing the current-budget pointer
// when it referenced that month. Returns false when nothing was deleted.
func (t *Tracker) Delete(ctx context.Context, month string) bool {
	target := t.targetMonth(month)
	if err := t.budgets.DeleteBudget(ctx, target); err != nil {
		slog.Warn("failed to delete budget", "month", target, "error", err)
		return false
	}

	t.notify(ctx)
	return true
}

// Months returns every month with a stored budget, newest first.
func (t *Tracker) Months(ctx context.Context) []string {
	months, err := t.budgets.BudgetMonths(ctx)
	if err != nil {
		slog.Error("failed to list budget months", "error", err)
		return nil
	}
	return months
}

// Status computes spent-vs-budget for a month (current month when "").
// The status is well defined even without a stored budget: Budget is nil
// and Remaining goes negative by the full spent amount.
func (t *Tracker) Status(ctx context.Context, month string) model.BudgetStatus {
	target := t.targetMonth(month)
	budget := t.Get(ctx, target)

	spent := t.spentInMonth(ctx, target)

	var budgetAmount float64
	if budget != nil {
		budgetAmount = budget.Amount
	}
	remaining := budgetAmount - spent

	var percentUsed float64
	if budget != nil && budget.Amount > 0 {
		percentUsed = spent / budget.Amount * 100
	}

	return model.BudgetStatus{
		Budget:       budget,
		Month:        target,
		TotalSpent:   spent,
		Remaining:    remaining,
		PercentUsed:  percentUsed,
		IsOverBudget: remaining < 0,
	}
}

// MonthlyComparison contrasts a month's spending with the month before
// it. The percentage change is zero when the previous month spent
// nothing, avoiding division by zero in rendered text.
func (t *Tracker) MonthlyComparison(ctx context.Context, targetMonth string) model.MonthlyComparison {
	current := t.Status(ctx, targetMonth)
	previous := t.Status(ctx, t.resolver.PreviousMonthKey(t.targetMonth(targetMonth)))

	change := current.TotalSpent - previous.TotalSpent
	var percent float64
	if previous.TotalSpent > 0 {
		percent = change / previous.TotalSpent * 100
	}

	return model.MonthlyComparison{
		CurrentMonth:   current,
		PreviousMonth:  previous,
		SpendingChange: change,
		PercentChange:  percent,
	}
}

// CurrentMonthKey returns the current "YYYY-MM" month key.
func (t *Tracker) CurrentMonthKey() string {
	return t.resolver.CurrentMonthKey()
}

// Subscribe returns a channel receiving the current budget after every
// set or delete. The channel is buffered; slow consumers miss
// intermediate values rather than blocking writers.
func (t *Tracker) Subscribe() <-chan *model.Budget {
	ch := make(chan *model.Budget, 1)
	t.mu.Lock()
	t.subscribers = append(t.subscribers, ch)
	t.mu.Unlock()
	return ch
}

func (t *Tracker) notify(ctx context.Context) {
	current, err := t.budgets.CurrentBudget(ctx)
	if err != nil {
		slog.Error("failed to read current budget for notification", "error", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.subscribers {
		select {
		case ch <- current:
		default:
			// Drop stale value so the latest goes through.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- current:
			default:
			}
		}
	}
}

func (t *Tracker) targetMonth(month string) string {
	if month == "" {
		return t.resolver.CurrentMonthKey()
	}
	return month
}

func (t *Tracker) spentInMonth(ctx context.Context, month string) float64 {
	rng, err := t.resolver.MonthKeyRange(month)
	if err != nil {
		slog.Warn("invalid month key, using current month", "month", month, "error", err)
		rng = t.resolver.CurrentMonthRange()
	}

	total, err := t.expenses.TotalByDateRange(ctx, rng.StartMillis, rng.EndMillis)
	if err != nil {
		slog.Error("failed to total month spending", "month", month, "error", err)
		return 0
	}
	return total
}
