package loan

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusUnderReview, StatusApproved, StatusFunded,
		StatusActive, StatusRejected, StatusCompleted, StatusDefaulted} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if Status("proposed").Valid() {
		t.Fatal("unknown status accepted")
	}
}

func TestRepaymentStatus_Valid(t *testing.T) {
	for _, s := range []RepaymentStatus{RepaymentPending, RepaymentPaid, RepaymentOverdue, RepaymentPartial} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if RepaymentStatus("late").Valid() {
		t.Fatal("unknown repayment status accepted")
	}
}

func TestApplyFunding(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	l := &Loan{AmountRequested: 5000, AmountFunded: 4000, Status: StatusApproved}
	l.ApplyFunding(500, at)
	if l.AmountFunded != 4500 || l.Status != StatusApproved || l.FundedAt != nil {
		t.Fatalf("partial funding: %+v", l)
	}
	if l.Remaining() != 500 {
		t.Fatalf("remaining = %v, want 500", l.Remaining())
	}

	l.ApplyFunding(500, at)
	if l.AmountFunded != 5000 || l.Status != StatusFunded {
		t.Fatalf("full funding: %+v", l)
	}
	if l.FundedAt == nil || !l.FundedAt.Equal(at) {
		t.Fatalf("funded_at not set: %v", l.FundedAt)
	}
}

func TestFunding_ComparesCents(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	l := &Loan{AmountRequested: 1000.30, AmountFunded: 1000.10, Status: StatusApproved}
	if l.Remaining() != 0.20 || l.RemainingCents() != 20 {
		t.Fatalf("remaining = %v (%d cents), want 0.20", l.Remaining(), l.RemainingCents())
	}
	if !l.CanFund(0.20) || l.CanFund(0.21) {
		t.Fatal("CanFund must accept exactly the remainder and nothing more")
	}
	l.ApplyFunding(0.20, at)
	if l.AmountFunded != 1000.30 || l.Status != StatusFunded {
		t.Fatalf("exact remainder: %+v", l)
	}

	l = &Loan{AmountRequested: 1, Status: StatusApproved}
	l.ApplyFunding(0.10, at)
	l.ApplyFunding(0.20, at)
	if l.AmountFunded != 0.30 {
		t.Fatalf("funded = %v, want 0.30", l.AmountFunded)
	}
}

func TestExceedsRemainingError(t *testing.T) {
	var err error = &ExceedsRemainingError{Remaining: 500}
	wrapped := fmt.Errorf("invest: %w", err)

	if !errors.Is(wrapped, ErrExceedsRemaining) {
		t.Fatal("errors.Is should match ErrExceedsRemaining")
	}
	var ere *ExceedsRemainingError
	if !errors.As(wrapped, &ere) || ere.Remaining != 500 {
		t.Fatalf("errors.As failed: %v", ere)
	}
	if want := "investment exceeds remaining amount: maximum investment $500.00"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}
