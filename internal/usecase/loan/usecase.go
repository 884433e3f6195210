package loan

import (
	"context"
	"errors"
	"fmt"

	"farmlend-backend/internal/domain/loan"
	"farmlend-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo loan.Repository }

func NewUsecase(r loan.Repository) *Usecase { return &Usecase{repo: r} }

// Apply files a new application for farmerID. Input bounds are checked at the
// HTTP boundary; nothing else is validated here.
func (u *Usecase) Apply(ctx context.Context, farmerID string, in ApplyInput) (*LoanDTO, error) {
	l := &loan.Loan{
		LoanID:          id.NewID32(),
		FarmerID:        farmerID,
		AmountRequested: in.AmountRequested,
		InterestRate:    in.InterestRate,
		DurationMonths:  in.DurationMonths,
		Purpose:         in.Purpose,
		Status:          loan.StatusPending,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	dto := NewLoanDTO(l)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan %s: %w", loanID, err)
	}
	dto := NewLoanDTO(l)
	return &dto, nil
}

// ListByFarmer returns the farmer's loans, newest first.
func (u *Usecase) ListByFarmer(ctx context.Context, farmerID string) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx, loan.Filter{FarmerID: farmerID})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return NewLoanDTOs(ls), nil
}
