package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainInv "farmlend-backend/internal/domain/investment"
	domainLoan "farmlend-backend/internal/domain/loan"
	"farmlend-backend/internal/domain/uow"
	loanUC "farmlend-backend/internal/usecase/loan"
	"farmlend-backend/pkg/finance"
	"farmlend-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans       domainLoan.Repository
	investments domainInv.Repository
	uow         uow.UnitOfWork
	now         func() time.Time
}

func NewUsecase(loans domainLoan.Repository, investments domainInv.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, investments: investments, uow: tx, now: time.Now}
}

// Invest records amount from investorID against the loan and credits it to
// the loan's funded total, both in one transaction with the loan row locked.
// Rejected investments write nothing.
func (u *Usecase) Invest(ctx context.Context, investorID, loanID string, amount float64) (*InvestResult, error) {
	if amount <= 0 {
		return nil, domainLoan.ErrInvalidAmount
	}

	var res InvestResult
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrNotInvestable
		}
		if !l.CanFund(amount) {
			return &domainLoan.ExceedsRemainingError{Remaining: l.Remaining()}
		}

		at := u.now().UTC()
		inv := &domainInv.Investment{
			InvestmentID:   id.NewID32(),
			LoanID:         l.ID,
			InvestorID:     investorID,
			AmountInvested: amount,
			ExpectedReturn: finance.ExpectedReturn(amount, l.InterestRate, l.DurationMonths),
			Status:         domainInv.StatusActive,
			InvestedAt:     at,
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}

		n, err := r.Loans.AddFunding(ctx, l.ID, amount, at)
		if err != nil {
			return err
		}
		if n == 0 {
			// the row moved under us; roll the investment back
			return &domainLoan.ExceedsRemainingError{Remaining: l.Remaining()}
		}
		l.ApplyFunding(amount, at)

		res.Investment = newInvestmentDTO(inv)
		res.Investment.LoanID = l.LoanID
		res.Loan = loanUC.NewLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (u *Usecase) Quote(ctx context.Context, loanID string, amount float64) (*QuoteDTO, error) {
	if amount <= 0 {
		return nil, domainLoan.ErrInvalidAmount
	}
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLoan.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("quote loan %s: %w", loanID, err)
	}
	ret := finance.ExpectedReturn(amount, l.InterestRate, l.DurationMonths)
	return &QuoteDTO{
		LoanID:         l.LoanID,
		Amount:         amount,
		ExpectedReturn: ret,
		TotalExpected:  amount + ret,
		MaxInvestment:  l.Remaining(),
		Acceptable:     l.Status == domainLoan.StatusApproved && l.CanFund(amount),
	}, nil
}

// ListForInvestor returns the investor's portfolio with each loan attached.
func (u *Usecase) ListForInvestor(ctx context.Context, investorID string) ([]InvestmentDTO, error) {
	invs, err := u.investments.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	out := make([]InvestmentDTO, 0, len(invs))
	for i := range invs {
		out = append(out, newInvestmentDTO(&invs[i]))
	}
	return out, nil
}
