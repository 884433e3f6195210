package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainLoan "farmlend-backend/internal/domain/loan"
	"farmlend-backend/internal/domain/uow"
	loanUC "farmlend-backend/internal/usecase/loan"

	"gorm.io/gorm"
)

type Usecase struct {
	loans domainLoan.Repository
	uow   uow.UnitOfWork
	now   func() time.Time
}

// NewUsecase: loans serves the pending list, tx the review writes.
func NewUsecase(loans domainLoan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, uow: tx, now: time.Now}
}

// Approve marks the loan approved by adminID. There is no precondition on the
// loan's current status.
func (u *Usecase) Approve(ctx context.Context, adminID, loanID string, notes string) (*loanUC.LoanDTO, error) {
	at := u.now().UTC()
	return u.review(ctx, loanID, domainLoan.ReviewUpdate{
		Status:     domainLoan.StatusApproved,
		ApprovedBy: &adminID,
		ApprovedAt: &at,
		AdminNotes: notesPtr(notes),
	})
}

// Reject marks the loan rejected, whatever its current status.
func (u *Usecase) Reject(ctx context.Context, loanID string, notes string) (*loanUC.LoanDTO, error) {
	return u.review(ctx, loanID, domainLoan.ReviewUpdate{
		Status:     domainLoan.StatusRejected,
		AdminNotes: notesPtr(notes),
	})
}

func (u *Usecase) review(ctx context.Context, loanID string, upd domainLoan.ReviewUpdate) (*loanUC.LoanDTO, error) {
	var dto loanUC.LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainLoan.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := r.Loans.UpdateReview(ctx, l.ID, upd); err != nil {
			return err
		}

		l.Status = upd.Status
		if upd.ApprovedBy != nil {
			l.ApprovedBy = upd.ApprovedBy
			l.ApprovedAt = upd.ApprovedAt
		}
		if upd.AdminNotes != nil {
			l.AdminNotes = upd.AdminNotes
		}
		dto = loanUC.NewLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// ListPending is the admin review queue, newest first.
func (u *Usecase) ListPending(ctx context.Context) ([]loanUC.LoanDTO, error) {
	ls, err := u.loans.List(ctx, domainLoan.Filter{Statuses: []domainLoan.Status{domainLoan.StatusPending}})
	if err != nil {
		return nil, fmt.Errorf("list pending loans: %w", err)
	}
	return loanUC.NewLoanDTOs(ls), nil
}

func notesPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
