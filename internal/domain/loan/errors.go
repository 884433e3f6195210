package loan

import (
	"errors"

	"farmlend-backend/pkg/finance"
)

var (
	ErrNotFound         = errors.New("loan not found")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrNotInvestable    = errors.New("loan is not open for investment")
	ErrExceedsRemaining = errors.New("investment exceeds remaining amount")
)

// ExceedsRemainingError carries the largest amount that would have been accepted.
type ExceedsRemainingError struct {
	Remaining float64
}

func (e *ExceedsRemainingError) Error() string {
	return ErrExceedsRemaining.Error() + ": maximum investment " + finance.FormatMoney(e.Remaining)
}

func (e *ExceedsRemainingError) Is(target error) bool { return target == ErrExceedsRemaining }
