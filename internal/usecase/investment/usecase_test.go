package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	domainInv "farmlend-backend/internal/domain/investment"
	domainLoan "farmlend-backend/internal/domain/loan"
	"farmlend-backend/internal/domain/uow"
	"farmlend-backend/internal/testutil/investmentmock"
	"farmlend-backend/internal/testutil/loanmock"
	"farmlend-backend/internal/testutil/uowmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const investorID = "iiiiiiiiiiiiiiiiiiiiiiiiiiiiiiii"

// fixture keeps a single loan row in memory and applies AddFunding with the
// same guard the SQL statement uses.
type fixture struct {
	loan     *domainLoan.Loan
	created  []*domainInv.Investment
	loans    *loanmock.Repo
	invs     *investmentmock.Repo
	uc       *Usecase
	rollback bool
}

func newFixture(l *domainLoan.Loan) *fixture {
	f := &fixture{loan: l}
	f.loans = &loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, loanID string) (*domainLoan.Loan, error) {
			if loanID != f.loan.LoanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *f.loan
			return &cp, nil
		},
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*domainLoan.Loan, error) {
			if loanID != f.loan.LoanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *f.loan
			return &cp, nil
		},
		AddFundingFn: func(_ context.Context, id uint64, amount float64, at time.Time) (int64, error) {
			if id != f.loan.ID || !f.loan.CanFund(amount) {
				return 0, nil
			}
			f.loan.ApplyFunding(amount, at)
			return 1, nil
		},
	}
	f.invs = &investmentmock.Repo{
		CreateFn: func(_ context.Context, inv *domainInv.Investment) error {
			f.created = append(f.created, inv)
			return nil
		},
	}
	pass := uowmock.Passthrough(uow.Repos{Loans: f.loans, Investments: f.invs})
	inner := pass.WithinLoanTxFn
	// emulate rollback: drop investments written by a failed body
	pass.WithinLoanTxFn = func(ctx context.Context, loanID string, fn func(uow.Repos, *domainLoan.Loan) error) error {
		before := len(f.created)
		err := inner(ctx, loanID, fn)
		if err != nil {
			f.rollback = len(f.created) > before
			f.created = f.created[:before]
		}
		return err
	}
	f.uc = NewUsecase(f.loans, f.invs, pass)
	f.uc.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func approvedLoan(requested, funded float64) *domainLoan.Loan {
	return &domainLoan.Loan{
		ID: 9, LoanID: "LN-9",
		AmountRequested: requested, AmountFunded: funded,
		InterestRate: 6, DurationMonths: 12,
		Status: domainLoan.StatusApproved,
	}
}

func TestInvest_ExceedsThenFillsExactly(t *testing.T) {
	f := newFixture(approvedLoan(5000, 4500))
	ctx := context.Background()

	_, err := f.uc.Invest(ctx, investorID, "LN-9", 600)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainLoan.ErrExceedsRemaining)
	var ex *domainLoan.ExceedsRemainingError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 500.0, ex.Remaining)
	assert.Contains(t, err.Error(), "$500")
	assert.Empty(t, f.created)
	assert.Equal(t, 4500.0, f.loan.AmountFunded)

	res, err := f.uc.Invest(ctx, investorID, "LN-9", 500)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, f.loan.AmountFunded)
	assert.Equal(t, domainLoan.StatusFunded, f.loan.Status)
	require.NotNil(t, f.loan.FundedAt)

	require.Len(t, f.created, 1)
	inv := f.created[0]
	assert.Equal(t, domainInv.StatusActive, inv.Status)
	assert.Equal(t, uint64(9), inv.LoanID)
	assert.InDelta(t, 30.0, inv.ExpectedReturn, 1e-9)

	assert.Equal(t, "funded", res.Loan.Status)
	assert.Equal(t, 100, res.Loan.FundingPercent)
	assert.Equal(t, "LN-9", res.Investment.LoanID)
}

func TestInvest_PartialKeepsStatus(t *testing.T) {
	f := newFixture(approvedLoan(1000, 0))

	res, err := f.uc.Invest(context.Background(), investorID, "LN-9", 1000*0.4)
	require.NoError(t, err)
	assert.Equal(t, domainLoan.StatusApproved, f.loan.Status)
	assert.Nil(t, f.loan.FundedAt)
	assert.Equal(t, 400.0, res.Loan.AmountFunded)
	assert.Equal(t, 40, res.Loan.FundingPercent)
}

func TestInvest_ExpectedReturnExample(t *testing.T) {
	f := newFixture(approvedLoan(10000, 0))
	res, err := f.uc.Invest(context.Background(), investorID, "LN-9", 1000)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, res.Investment.ExpectedReturn, 1e-9)
}

func TestInvest_Rejections(t *testing.T) {
	ctx := context.Background()

	f := newFixture(approvedLoan(1000, 0))
	_, err := f.uc.Invest(ctx, investorID, "LN-9", 0)
	assert.ErrorIs(t, err, domainLoan.ErrInvalidAmount)
	_, err = f.uc.Invest(ctx, investorID, "LN-9", -5)
	assert.ErrorIs(t, err, domainLoan.ErrInvalidAmount)

	_, err = f.uc.Invest(ctx, investorID, "LN-missing", 10)
	assert.ErrorIs(t, err, domainLoan.ErrNotFound)

	for _, s := range []domainLoan.Status{domainLoan.StatusPending, domainLoan.StatusFunded, domainLoan.StatusRejected} {
		l := approvedLoan(1000, 0)
		l.Status = s
		f := newFixture(l)
		_, err := f.uc.Invest(ctx, investorID, "LN-9", 10)
		assert.ErrorIs(t, err, domainLoan.ErrNotInvestable, "status %s", s)
		assert.Empty(t, f.created)
	}
}

func TestInvest_ConditionalUpdateMissRollsBack(t *testing.T) {
	f := newFixture(approvedLoan(1000, 0))
	// another investor got there first between the lock and the update
	f.loans.AddFundingFn = func(context.Context, uint64, float64, time.Time) (int64, error) { return 0, nil }

	_, err := f.uc.Invest(context.Background(), investorID, "LN-9", 800)
	assert.ErrorIs(t, err, domainLoan.ErrExceedsRemaining)
	assert.True(t, f.rollback)
	assert.Empty(t, f.created)
}

func TestInvest_StoreErrors(t *testing.T) {
	boom := errors.New("insert failed")
	f := newFixture(approvedLoan(1000, 0))
	f.invs.CreateFn = func(context.Context, *domainInv.Investment) error { return boom }

	_, err := f.uc.Invest(context.Background(), investorID, "LN-9", 100)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0.0, f.loan.AmountFunded)

	f = newFixture(approvedLoan(1000, 0))
	f.loans.AddFundingFn = func(context.Context, uint64, float64, time.Time) (int64, error) { return 0, boom }
	_, err = f.uc.Invest(context.Background(), investorID, "LN-9", 100)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.created)
}

func TestQuote(t *testing.T) {
	f := newFixture(approvedLoan(5000, 4500))
	ctx := context.Background()

	q, err := f.uc.Quote(ctx, "LN-9", 500)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, q.ExpectedReturn, 1e-9)
	assert.InDelta(t, 530.0, q.TotalExpected, 1e-9)
	assert.Equal(t, 500.0, q.MaxInvestment)
	assert.True(t, q.Acceptable)

	q, err = f.uc.Quote(ctx, "LN-9", 600)
	require.NoError(t, err)
	assert.False(t, q.Acceptable)

	_, err = f.uc.Quote(ctx, "LN-9", 0)
	assert.ErrorIs(t, err, domainLoan.ErrInvalidAmount)
	_, err = f.uc.Quote(ctx, "nope", 10)
	assert.ErrorIs(t, err, domainLoan.ErrNotFound)
	assert.Empty(t, f.created)
}

func TestListForInvestor(t *testing.T) {
	invs := &investmentmock.Repo{
		ListByInvestorFn: func(_ context.Context, id string) ([]domainInv.Investment, error) {
			require.Equal(t, investorID, id)
			return []domainInv.Investment{
				{InvestmentID: "IV-2", AmountInvested: 200, Status: domainInv.StatusActive,
					Loan: &domainLoan.Loan{LoanID: "LN-2", AmountRequested: 1000, AmountFunded: 200, Status: domainLoan.StatusApproved}},
				{InvestmentID: "IV-1", AmountInvested: 100, Status: domainInv.StatusCompleted},
			}, nil
		},
	}
	uc := NewUsecase(&loanmock.Repo{}, invs, uowmock.New())

	out, err := uc.ListForInvestor(context.Background(), investorID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "LN-2", out[0].LoanID)
	require.NotNil(t, out[0].Loan)
	assert.Equal(t, 20, out[0].Loan.FundingPercent)
	assert.Nil(t, out[1].Loan)
	assert.Equal(t, "completed", out[1].Status)

	invs.ListByInvestorFn = func(context.Context, string) ([]domainInv.Investment, error) {
		return nil, errors.New("timeout")
	}
	_, err = uc.ListForInvestor(context.Background(), investorID)
	assert.ErrorContains(t, err, "timeout")
}

func TestInvest_ExactRemainderInCents(t *testing.T) {
	f := newFixture(approvedLoan(1000.30, 1000.10))
	ctx := context.Background()

	_, err := f.uc.Invest(ctx, investorID, "LN-9", 0.21)
	var ex *domainLoan.ExceedsRemainingError
	require.True(t, errors.As(err, &ex), "err = %v", err)
	assert.Equal(t, 0.20, ex.Remaining)
	assert.Contains(t, err.Error(), "$0.20")

	q, err := f.uc.Quote(ctx, "LN-9", 0.20)
	require.NoError(t, err)
	assert.True(t, q.Acceptable)
	assert.Equal(t, 0.20, q.MaxInvestment)

	res, err := f.uc.Invest(ctx, investorID, "LN-9", 0.20)
	require.NoError(t, err)
	require.Len(t, f.created, 1)
	assert.Equal(t, 1000.30, f.loan.AmountFunded)
	assert.Equal(t, domainLoan.StatusFunded, f.loan.Status)
	assert.Equal(t, "funded", res.Loan.Status)
}

func TestInvest_SmallIncrementsStayExact(t *testing.T) {
	f := newFixture(approvedLoan(1, 0))
	ctx := context.Background()

	for _, amt := range []float64{0.10, 0.20, 0.70} {
		_, err := f.uc.Invest(ctx, investorID, "LN-9", amt)
		require.NoError(t, err, "amount %v", amt)
	}
	assert.Equal(t, 1.0, f.loan.AmountFunded)
	assert.Equal(t, domainLoan.StatusFunded, f.loan.Status)
	assert.Len(t, f.created, 3)
}
