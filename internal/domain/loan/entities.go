package loan

import (
	"time"

	"farmlend-backend/pkg/finance"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusFunded      Status = "funded"
	StatusActive      Status = "active"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
	StatusDefaulted   Status = "defaulted"
)

// under_review, active, completed and defaulted have no producing transition
// in this service; they are set out-of-band.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusFunded,
		StatusActive, StatusRejected, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

type RepaymentStatus string

const (
	RepaymentPending RepaymentStatus = "pending"
	RepaymentPaid    RepaymentStatus = "paid"
	RepaymentOverdue RepaymentStatus = "overdue"
	RepaymentPartial RepaymentStatus = "partial"
)

func (s RepaymentStatus) Valid() bool {
	switch s {
	case RepaymentPending, RepaymentPaid, RepaymentOverdue, RepaymentPartial:
		return true
	}
	return false
}

type Loan struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string     `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	FarmerID        string     `gorm:"column:farmer_id;size:32;index:idx_loans_farmer" json:"farmer_id"`
	AmountRequested float64    `gorm:"column:amount_requested;type:decimal(18,2);not null" json:"amount_requested"`
	AmountFunded    float64    `gorm:"column:amount_funded;type:decimal(18,2);not null;default:0" json:"amount_funded"`
	InterestRate    float64    `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths  int        `gorm:"column:duration_months;not null" json:"duration_months"`
	Purpose         string     `gorm:"column:purpose;type:text;not null" json:"purpose"`
	Status          Status     `gorm:"column:status;type:enum('pending','under_review','approved','funded','active','rejected','completed','defaulted');default:'pending';index:idx_loans_status" json:"status"`
	RiskScore       *int       `gorm:"column:risk_score" json:"risk_score,omitempty"`
	RiskCategory    *string    `gorm:"column:risk_category" json:"risk_category,omitempty"`
	ApprovedBy      *string    `gorm:"column:approved_by;size:32" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	AdminNotes      *string    `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`
	DueDate         *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	FundedAt        *time.Time `gorm:"column:funded_at" json:"funded_at,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// RemainingCents is what investors can still put into the loan.
func (l *Loan) RemainingCents() int64 {
	return finance.Cents(l.AmountRequested) - finance.Cents(l.AmountFunded)
}

func (l *Loan) Remaining() float64 { return finance.FromCents(l.RemainingCents()) }

// CanFund reports whether amount fits in what is left, compared in cents.
func (l *Loan) CanFund(amount float64) bool { return finance.Cents(amount) <= l.RemainingCents() }

// ApplyFunding mirrors the conditional increment done by the repository.
func (l *Loan) ApplyFunding(amount float64, at time.Time) {
	funded := finance.Cents(l.AmountFunded) + finance.Cents(amount)
	l.AmountFunded = finance.FromCents(funded)
	if funded >= finance.Cents(l.AmountRequested) {
		l.Status = StatusFunded
		l.FundedAt = &at
	}
}
