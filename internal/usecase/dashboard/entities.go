package dashboard

import (
	loanUC "farmlend-backend/internal/usecase/loan"
)

const unknownFarmer = "Unknown"

type FarmerStats struct {
	TotalLoans    int64   `json:"total_loans"`
	ActiveLoans   int64   `json:"active_loans"`
	TotalBorrowed float64 `json:"total_borrowed"`
	PendingLoans  int64   `json:"pending_loans"`
}

type FarmerDashboard struct {
	Role  string           `json:"role"`
	Stats FarmerStats      `json:"stats"`
	Loans []loanUC.LoanDTO `json:"loans"`
}

type InvestorStats struct {
	TotalInvested     float64 `json:"total_invested"`
	ActiveInvestments int64   `json:"active_investments"`
	ExpectedReturns   float64 `json:"expected_returns"`
	PortfolioValue    float64 `json:"portfolio_value"`
}

// AvailableLoan is an approved loan offered to investors, with the
// borrowing farmer's display name.
type AvailableLoan struct {
	loanUC.LoanDTO
	FarmerName string `json:"farmer_name"`
}

type InvestorDashboard struct {
	Role      string          `json:"role"`
	Stats     InvestorStats   `json:"stats"`
	Available []AvailableLoan `json:"available_loans"`
}

type AdminStats struct {
	TotalLoans    int64   `json:"total_loans"`
	PendingReview int64   `json:"pending_review"`
	TotalFunded   float64 `json:"total_funded"`
	ActiveUsers   int64   `json:"active_users"`
}

type AdminDashboard struct {
	Role    string           `json:"role"`
	Stats   AdminStats       `json:"stats"`
	Pending []loanUC.LoanDTO `json:"pending_loans"`
}
