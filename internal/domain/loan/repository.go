package loan

import (
	"context"
	"time"
)

// Column names a summable money column.
type Column string

const (
	ColumnRequested Column = "amount_requested"
	ColumnFunded    Column = "amount_funded"
)

// Filter is the predicate used by list and summary queries. Empty fields
// don't constrain.
type Filter struct {
	FarmerID string
	Statuses []Status
}

// ReviewUpdate holds the columns an admin review writes. Nil fields are left alone.
type ReviewUpdate struct {
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	AdminNotes *string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// List returns matching loans, newest first.
	List(ctx context.Context, f Filter) ([]Loan, error)

	UpdateReview(ctx context.Context, id uint64, u ReviewUpdate) error
	// AddFunding increments amount_funded only while the result stays within
	// amount_requested, flipping status to funded when it reaches it.
	// Returns the number of rows changed (0 or 1).
	AddFunding(ctx context.Context, id uint64, amount float64, at time.Time) (int64, error)

	Count(ctx context.Context, f Filter) (int64, error)
	Sum(ctx context.Context, col Column, f Filter) (float64, error)
}
