package investment

import "context"

type Column string

const (
	ColumnInvested Column = "amount_invested"
	ColumnExpected Column = "expected_return"
)

type Filter struct {
	InvestorID string
	Statuses   []Status
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	// ListByInvestor preloads each investment's loan, newest first.
	ListByInvestor(ctx context.Context, investorID string) ([]Investment, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Sum(ctx context.Context, col Column, f Filter) (float64, error)
}
