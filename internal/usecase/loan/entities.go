package loan

import (
	"time"

	domain "farmlend-backend/internal/domain/loan"
	"farmlend-backend/pkg/finance"
)

type ApplyInput struct {
	AmountRequested float64
	DurationMonths  int
	InterestRate    float64
	Purpose         string
}

const notFundedYet = "Not funded yet"

// LoanDTO is a loan plus everything the dashboards render next to it.
type LoanDTO struct {
	LoanID          string     `json:"loan_id"`
	FarmerID        string     `json:"farmer_id"`
	AmountRequested float64    `json:"amount_requested"`
	AmountFunded    float64    `json:"amount_funded"`
	Remaining       float64    `json:"remaining"`
	InterestRate    float64    `json:"interest_rate"`
	DurationMonths  int        `json:"duration_months"`
	Purpose         string     `json:"purpose"`
	Status          string     `json:"status"`
	RiskScore       *int       `json:"risk_score,omitempty"`
	RiskCategory    *string    `json:"risk_category,omitempty"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	AdminNotes      *string    `json:"admin_notes,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	FundedAt        *time.Time `json:"funded_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	StatusBadge    finance.Badge     `json:"status_badge"`
	Risk           finance.RiskLevel `json:"risk"`
	FundingPercent int               `json:"funding_percent"`
	ProgressWidth  float64           `json:"progress_width"`
	FundedLabel    string            `json:"funded_label"`
}

func NewLoanDTO(l *domain.Loan) LoanDTO {
	label := notFundedYet
	if l.AmountFunded != 0 {
		label = finance.FormatCurrency(l.AmountFunded) + " funded"
	}
	return LoanDTO{
		LoanID:          l.LoanID,
		FarmerID:        l.FarmerID,
		AmountRequested: l.AmountRequested,
		AmountFunded:    l.AmountFunded,
		Remaining:       l.Remaining(),
		InterestRate:    l.InterestRate,
		DurationMonths:  l.DurationMonths,
		Purpose:         l.Purpose,
		Status:          string(l.Status),
		RiskScore:       l.RiskScore,
		RiskCategory:    l.RiskCategory,
		ApprovedBy:      l.ApprovedBy,
		ApprovedAt:      l.ApprovedAt,
		AdminNotes:      l.AdminNotes,
		DueDate:         l.DueDate,
		FundedAt:        l.FundedAt,
		CreatedAt:       l.CreatedAt,

		StatusBadge:    finance.StatusBadge(string(l.Status)),
		Risk:           finance.Risk(l.RiskScore),
		FundingPercent: finance.FundingPercent(l.AmountFunded, l.AmountRequested),
		ProgressWidth:  finance.ProgressWidth(l.AmountFunded, l.AmountRequested),
		FundedLabel:    label,
	}
}

func NewLoanDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, NewLoanDTO(&ls[i]))
	}
	return out
}
