package investment

import (
	"time"

	"farmlend-backend/internal/domain/loan"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Table: loan_investments
type Investment struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	InvestmentID   string    `gorm:"column:investment_id;size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	LoanID         uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	InvestorID     string    `gorm:"column:investor_id;size:32;not null;index" json:"investor_id"`
	AmountInvested float64   `gorm:"column:amount_invested;type:decimal(18,2);not null" json:"amount_invested"`
	ExpectedReturn float64   `gorm:"column:expected_return;type:decimal(18,2);not null" json:"expected_return"`
	ActualReturn   *float64  `gorm:"column:actual_return;type:decimal(18,2)" json:"actual_return,omitempty"`
	Status         Status    `gorm:"column:status;type:enum('active','completed','cancelled');default:'active'" json:"status"`
	InvestedAt     time.Time `gorm:"column:invested_at;autoCreateTime" json:"invested_at"`

	Loan *loan.Loan `gorm:"foreignKey:LoanID;references:ID" json:"-"`
}

func (Investment) TableName() string { return "loan_investments" }
