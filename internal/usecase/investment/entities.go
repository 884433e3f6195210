package investment

import (
	"time"

	domainInv "farmlend-backend/internal/domain/investment"
	loanUC "farmlend-backend/internal/usecase/loan"
)

type InvestmentDTO struct {
	InvestmentID   string          `json:"investment_id"`
	LoanID         string          `json:"loan_id,omitempty"`
	InvestorID     string          `json:"investor_id"`
	AmountInvested float64         `json:"amount_invested"`
	ExpectedReturn float64         `json:"expected_return"`
	ActualReturn   *float64        `json:"actual_return,omitempty"`
	Status         string          `json:"status"`
	InvestedAt     time.Time       `json:"invested_at"`
	Loan           *loanUC.LoanDTO `json:"loan,omitempty"`
}

func newInvestmentDTO(inv *domainInv.Investment) InvestmentDTO {
	dto := InvestmentDTO{
		InvestmentID:   inv.InvestmentID,
		InvestorID:     inv.InvestorID,
		AmountInvested: inv.AmountInvested,
		ExpectedReturn: inv.ExpectedReturn,
		ActualReturn:   inv.ActualReturn,
		Status:         string(inv.Status),
		InvestedAt:     inv.InvestedAt,
	}
	if inv.Loan != nil {
		l := loanUC.NewLoanDTO(inv.Loan)
		dto.LoanID = l.LoanID
		dto.Loan = &l
	}
	return dto
}

// InvestResult is the new investment and the loan as it stands afterwards.
type InvestResult struct {
	Investment InvestmentDTO  `json:"investment"`
	Loan       loanUC.LoanDTO `json:"loan"`
}

// QuoteDTO previews an investment without writing anything.
type QuoteDTO struct {
	LoanID         string  `json:"loan_id"`
	Amount         float64 `json:"amount"`
	ExpectedReturn float64 `json:"expected_return"`
	TotalExpected  float64 `json:"total_expected"`
	MaxInvestment  float64 `json:"max_investment"`
	Acceptable     bool    `json:"acceptable"`
}
