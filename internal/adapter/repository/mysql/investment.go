package mysql

import (
	"context"

	investmentDomain "farmlend-backend/internal/domain/investment"

	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Omit("Loan").Create(inv).Error
}

func (r *InvestmentRepository) ListByInvestor(ctx context.Context, investorID string) ([]investmentDomain.Investment, error) {
	var out []investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Preload("Loan").
		Where("investor_id = ?", investorID).
		Order("invested_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) Count(ctx context.Context, f investmentDomain.Filter) (int64, error) {
	var n int64
	res := r.filtered(ctx, f).Count(&n)
	return n, res.Error
}

func (r *InvestmentRepository) Sum(ctx context.Context, col investmentDomain.Column, f investmentDomain.Filter) (float64, error) {
	var total float64
	res := r.filtered(ctx, f).
		Select("COALESCE(SUM(" + string(col) + "), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *InvestmentRepository) filtered(ctx context.Context, f investmentDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&investmentDomain.Investment{})
	if f.InvestorID != "" {
		q = q.Where("investor_id = ?", f.InvestorID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	return q
}
