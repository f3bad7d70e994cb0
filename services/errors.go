package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers a missing meal, profile, streak or day summary.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientCredits is returned when a freeze is requested with a
	// zero balance.
	ErrInsufficientCredits = errors.New("insufficient freeze credits")
)

// ConsistencyError records a ledger or streak adjustment that kept failing
// after the meal write itself succeeded. The meal is durable; the aggregate is
// stale until reconciled. Callers log it and still report the mutation as
// successful.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s left aggregates stale: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }
