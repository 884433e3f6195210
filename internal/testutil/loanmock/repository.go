package loanmock

import (
	"context"
	"time"

	domain "farmlend-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	UpdateReviewFn         func(ctx context.Context, id uint64, u domain.ReviewUpdate) error
	AddFundingFn           func(ctx context.Context, id uint64, amount float64, at time.Time) (int64, error)
	CountFn                func(ctx context.Context, f domain.Filter) (int64, error)
	SumFn                  func(ctx context.Context, col domain.Column, f domain.Filter) (float64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) UpdateReview(ctx context.Context, id uint64, u domain.ReviewUpdate) error {
	if m.UpdateReviewFn != nil {
		return m.UpdateReviewFn(ctx, id, u)
	}
	return nil
}

func (m *Repo) AddFunding(ctx context.Context, id uint64, amount float64, at time.Time) (int64, error) {
	if m.AddFundingFn != nil {
		return m.AddFundingFn(ctx, id, amount, at)
	}
	return 1, nil
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
