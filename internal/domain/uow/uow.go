package uow

import (
	"context"

	"farmlend-backend/internal/domain/investment"
	"farmlend-backend/internal/domain/loan"
)

type Repos struct {
	Loans       loan.Repository
	Investments investment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; a missing loan is loan.ErrNotFound
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
