package dashboard

import (
	"context"
	"errors"
	"fmt"

	domainInv "farmlend-backend/internal/domain/investment"
	domainLoan "farmlend-backend/internal/domain/loan"
	domainProfile "farmlend-backend/internal/domain/profile"
	loanUC "farmlend-backend/internal/usecase/loan"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// max concurrent profile lookups when joining farmer names
const nameLookupLimit = 8

type Usecase struct {
	loans       domainLoan.Repository
	investments domainInv.Repository
	profiles    domainProfile.Repository
	log         *zap.Logger
}

func NewUsecase(loans domainLoan.Repository, investments domainInv.Repository, profiles domainProfile.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{loans: loans, investments: investments, profiles: profiles, log: log}
}

func (u *Usecase) Farmer(ctx context.Context, farmerID string) (*FarmerDashboard, error) {
	mine := domainLoan.Filter{FarmerID: farmerID}
	var (
		st  FarmerStats
		err error
	)
	if st.TotalLoans, err = u.loans.Count(ctx, mine); err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	if st.ActiveLoans, err = u.loans.Count(ctx, withStatus(mine, domainLoan.StatusActive)); err != nil {
		return nil, fmt.Errorf("count active loans: %w", err)
	}
	if st.PendingLoans, err = u.loans.Count(ctx, withStatus(mine, domainLoan.StatusPending, domainLoan.StatusUnderReview)); err != nil {
		return nil, fmt.Errorf("count pending loans: %w", err)
	}
	if st.TotalBorrowed, err = u.loans.Sum(ctx, domainLoan.ColumnRequested, withStatus(mine, domainLoan.StatusActive, domainLoan.StatusFunded)); err != nil {
		return nil, fmt.Errorf("sum borrowed: %w", err)
	}

	ls, err := u.loans.List(ctx, mine)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return &FarmerDashboard{
		Role:  string(domainProfile.RoleFarmer),
		Stats: st,
		Loans: loanUC.NewLoanDTOs(ls),
	}, nil
}

func (u *Usecase) Investor(ctx context.Context, investorID string) (*InvestorDashboard, error) {
	mine := domainInv.Filter{InvestorID: investorID}
	var (
		st  InvestorStats
		err error
	)
	if st.TotalInvested, err = u.investments.Sum(ctx, domainInv.ColumnInvested, mine); err != nil {
		return nil, fmt.Errorf("sum invested: %w", err)
	}
	if st.ExpectedReturns, err = u.investments.Sum(ctx, domainInv.ColumnExpected, mine); err != nil {
		return nil, fmt.Errorf("sum expected returns: %w", err)
	}
	active := domainInv.Filter{InvestorID: investorID, Statuses: []domainInv.Status{domainInv.StatusActive}}
	if st.ActiveInvestments, err = u.investments.Count(ctx, active); err != nil {
		return nil, fmt.Errorf("count investments: %w", err)
	}
	st.PortfolioValue = st.TotalInvested + st.ExpectedReturns

	avail, err := u.Available(ctx)
	if err != nil {
		return nil, err
	}
	return &InvestorDashboard{
		Role:      string(domainProfile.RoleInvestor),
		Stats:     st,
		Available: avail,
	}, nil
}

// Available lists approved loans, newest first, each with its farmer's name.
// A farmer whose profile can't be read shows as "Unknown".
func (u *Usecase) Available(ctx context.Context) ([]AvailableLoan, error) {
	ls, err := u.loans.List(ctx, domainLoan.Filter{Statuses: []domainLoan.Status{domainLoan.StatusApproved}})
	if err != nil {
		return nil, fmt.Errorf("list available loans: %w", err)
	}

	out := make([]AvailableLoan, len(ls))
	var g errgroup.Group
	g.SetLimit(nameLookupLimit)
	for i := range ls {
		out[i].LoanDTO = loanUC.NewLoanDTO(&ls[i])
		farmerID := ls[i].FarmerID
		g.Go(func() error {
			out[i].FarmerName = u.farmerName(ctx, farmerID)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

func (u *Usecase) farmerName(ctx context.Context, farmerID string) string {
	p, err := u.profiles.GetByID(ctx, farmerID)
	if err != nil {
		if !errors.Is(err, domainProfile.ErrNotFound) {
			u.log.Warn("farmer name lookup failed", zap.String("farmer_id", farmerID), zap.Error(err))
		}
		return unknownFarmer
	}
	if p.FullName == "" {
		return unknownFarmer
	}
	return p.FullName
}

func (u *Usecase) Admin(ctx context.Context) (*AdminDashboard, error) {
	var (
		st  AdminStats
		err error
	)
	if st.TotalLoans, err = u.loans.Count(ctx, domainLoan.Filter{}); err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	pending := domainLoan.Filter{Statuses: []domainLoan.Status{domainLoan.StatusPending}}
	if st.PendingReview, err = u.loans.Count(ctx, pending); err != nil {
		return nil, fmt.Errorf("count pending loans: %w", err)
	}
	funded := domainLoan.Filter{Statuses: []domainLoan.Status{domainLoan.StatusFunded, domainLoan.StatusActive}}
	if st.TotalFunded, err = u.loans.Sum(ctx, domainLoan.ColumnFunded, funded); err != nil {
		return nil, fmt.Errorf("sum funded: %w", err)
	}
	if st.ActiveUsers, err = u.profiles.Count(ctx); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}

	ls, err := u.loans.List(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("list pending loans: %w", err)
	}
	return &AdminDashboard{
		Role:    string(domainProfile.RoleAdmin),
		Stats:   st,
		Pending: loanUC.NewLoanDTOs(ls),
	}, nil
}

func withStatus(f domainLoan.Filter, ss ...domainLoan.Status) domainLoan.Filter {
	f.Statuses = ss
	return f
}
