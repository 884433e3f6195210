package investmentmock

import (
	"context"

	domain "farmlend-backend/internal/domain/investment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, inv *domain.Investment) error
	ListByInvestorFn func(ctx context.Context, investorID string) ([]domain.Investment, error)
	CountFn          func(ctx context.Context, f domain.Filter) (int64, error)
	SumFn            func(ctx context.Context, col domain.Column, f domain.Filter) (float64, error)
}

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID string) ([]domain.Investment, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, nil
}

func (m *Repo) Sum(ctx context.Context, col domain.Column, f domain.Filter) (float64, error) {
	if m.SumFn != nil {
		return m.SumFn(ctx, col, f)
	}
	return 0, nil
}
