package mysql

import (
	"context"
	"time"

	loanDomain "farmlend-backend/internal/domain/loan"
	"farmlend-backend/pkg/finance"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.filtered(ctx, f).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) UpdateReview(ctx context.Context, id uint64, u loanDomain.ReviewUpdate) error {
	cols := map[string]any{"status": u.Status}
	if u.ApprovedBy != nil {
		cols["approved_by"] = *u.ApprovedBy
	}
	if u.ApprovedAt != nil {
		cols["approved_at"] = *u.ApprovedAt
	}
	if u.AdminNotes != nil {
		cols["admin_notes"] = *u.AdminNotes
	}
	return r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// MySQL evaluates single-table SET assignments left to right, so status and
// funded_at must be computed before amount_funded changes.
// addFundingSQL works in cents so the guard is exact on both MySQL decimals
// and SQLite reals.
const addFundingSQL = `UPDATE loans SET
	status = CASE WHEN ROUND(amount_funded * 100) + ? >= ROUND(amount_requested * 100) THEN ? ELSE status END,
	funded_at = CASE WHEN ROUND(amount_funded * 100) + ? >= ROUND(amount_requested * 100) THEN ? ELSE funded_at END,
	updated_at = ?,
	amount_funded = (ROUND(amount_funded * 100) + ?) / 100
WHERE id = ? AND ROUND(amount_funded * 100) + ? <= ROUND(amount_requested * 100)`

func (r *LoanRepository) AddFunding(ctx context.Context, id uint64, amount float64, at time.Time) (int64, error) {
	cents := finance.Cents(amount)
	res := r.db.WithContext(ctx).Exec(addFundingSQL,
		cents, loanDomain.StatusFunded,
		cents, at,
		at,
		cents,
		id, cents,
	)
	return res.RowsAffected, res.Error
}

func (r *LoanRepository) Count(ctx context.Context, f loanDomain.Filter) (int64, error) {
	var n int64
	res := r.filtered(ctx, f).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) Sum(ctx context.Context, col loanDomain.Column, f loanDomain.Filter) (float64, error) {
	var total float64
	res := r.filtered(ctx, f).
		Select("COALESCE(SUM(" + string(col) + "), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *LoanRepository) filtered(ctx context.Context, f loanDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.FarmerID != "" {
		q = q.Where("farmer_id = ?", f.FarmerID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	return q
}
