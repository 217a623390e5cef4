package model

import "time"

// Expense represents a single recorded spend. Expenses are immutable once
// stored; insert and delete are the only mutations.
type Expense struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Category    string
	ID          int64
	Amount      float64
}

// DateMillis returns the transaction date as epoch milliseconds, the unit
// used by the storage layer and the date-range resolver.
func (e *Expense) DateMillis() int64 {
	return e.Date.UnixMilli()
}

// Valid reports whether the expense can be persisted. Zero or negative
// amounts fail closed: the add-expense flow never stores them.
func (e *Expense) Valid() bool {
	return e.Amount > 0 && e.Description != "" && e.Category != ""
}
