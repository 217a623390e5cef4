// Package storage provides the SQLite persistence layer for spence.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amoghbhat/spence/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start must not be after end")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrDefaultCategory  = errors.New("default categories cannot be deleted")
	ErrNotFound         = errors.New("not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDateRange ensures start is not after end, millisecond epochs.
func validateDateRange(startMillis, endMillis int64) error {
	if startMillis > endMillis {
		return fmt.Errorf("%w: %d > %d", ErrInvalidDateRange, startMillis, endMillis)
	}
	return nil
}

// validateExpense validates an expense before insertion. Zero or negative
// amounts are rejected so the add-expense flow fails closed.
func validateExpense(e *model.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, e.Amount)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidExpense)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidExpense)
	}
	return nil
}
