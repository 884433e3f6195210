package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainLoan "farmlend-backend/internal/domain/loan"
	"farmlend-backend/internal/domain/profile"
	"farmlend-backend/internal/domain/uow"
	"farmlend-backend/internal/testutil/investmentmock"
	"farmlend-backend/internal/testutil/loanmock"
	"farmlend-backend/internal/testutil/uowmock"
	ucLoan "farmlend-backend/internal/usecase/loan"
	ucReview "farmlend-backend/internal/usecase/review"

	"gorm.io/gorm"
)

func newReviewHandler(loans *loanmock.Repo) *ReviewHandler {
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Investments: &investmentmock.Repo{}})
	return NewReviewHandler(ucReview.NewUsecase(loans, tx))
}

func reviewLoans(update *domainLoan.ReviewUpdate) *loanmock.Repo {
	return &loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, id string) (*domainLoan.Loan, error) {
			if id != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainLoan.Loan{ID: 5, LoanID: id, AmountRequested: 1000, Status: domainLoan.StatusPending}, nil
		},
		UpdateReviewFn: func(_ context.Context, _ uint64, u domainLoan.ReviewUpdate) error {
			*update = u
			return nil
		},
	}
}

func TestApproveLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	var upd domainLoan.ReviewUpdate
	h := newReviewHandler(reviewLoans(&upd))

	req := jsonReq(stdhttp.MethodPost, "/admin/loans/"+loanID+"/approve", map[string]any{"admin_notes": "verified land title"})
	c, rec := newCtx(e, req, adminID, profile.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if upd.Status != domainLoan.StatusApproved || upd.ApprovedBy == nil || *upd.ApprovedBy != adminID {
		t.Fatalf("update = %+v", upd)
	}
	var dto ucLoan.LoanDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &dto)
	if dto.Status != "approved" || dto.AdminNotes == nil || *dto.AdminNotes != "verified land title" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestRejectLoan_EmptyBody(t *testing.T) {
	e := newEchoWithValidator()
	var upd domainLoan.ReviewUpdate
	h := newReviewHandler(reviewLoans(&upd))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loans/"+loanID+"/reject", nil)
	c, rec := newCtx(e, req, adminID, profile.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.Reject(c); err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if upd.Status != domainLoan.StatusRejected || upd.AdminNotes != nil {
		t.Fatalf("update = %+v", upd)
	}
}

func TestReview_Failures(t *testing.T) {
	e := newEchoWithValidator()

	// unknown loan
	var upd domainLoan.ReviewUpdate
	h := newReviewHandler(reviewLoans(&upd))
	other := strings.Repeat("9", 32)
	c, rec := newCtx(e, httptest.NewRequest(stdhttp.MethodPost, "/", nil), adminID, profile.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues(other)
	_ = h.Approve(c)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown loan: status = %d, want 404", rec.Code)
	}

	// malformed id
	c, rec = newCtx(e, httptest.NewRequest(stdhttp.MethodPost, "/", nil), adminID, profile.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues("LN-1")
	_ = h.Reject(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad id: status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "loan_id", "32-char lowercase hex") {
		t.Fatalf("details = %+v", er.Details)
	}

	// store write failure surfaces as 400 with the raw message
	loans := reviewLoans(&upd)
	loans.UpdateReviewFn = func(context.Context, uint64, domainLoan.ReviewUpdate) error {
		return errors.New("deadlock found when trying to get lock")
	}
	h = newReviewHandler(loans)
	c, rec = newCtx(e, httptest.NewRequest(stdhttp.MethodPost, "/", nil), adminID, profile.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	_ = h.Reject(c)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("store failure: status = %d, want 400", rec.Code)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "deadlock found when trying to get lock" {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestListPending(t *testing.T) {
	e := newEchoWithValidator()
	h := newReviewHandler(&loanmock.Repo{
		ListFn: func(_ context.Context, f domainLoan.Filter) ([]domainLoan.Loan, error) {
			if len(f.Statuses) != 1 || f.Statuses[0] != domainLoan.StatusPending {
				t.Fatalf("filter = %+v", f)
			}
			return []domainLoan.Loan{{LoanID: loanID, Status: domainLoan.StatusPending}}, nil
		},
	})
	c, rec := newCtx(e, httptest.NewRequest(stdhttp.MethodGet, "/admin/loans/pending", nil), adminID, profile.RoleAdmin)
	if err := h.ListPending(c); err != nil {
		t.Fatalf("ListPending error: %v", err)
	}
	var out []ucLoan.LoanDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if rec.Code != stdhttp.StatusOK || len(out) != 1 {
		t.Fatalf("status = %d out = %+v", rec.Code, out)
	}

	h = newReviewHandler(&loanmock.Repo{
		ListFn: func(context.Context, domainLoan.Filter) ([]domainLoan.Loan, error) {
			return nil, errors.New("connection refused")
		},
	})
	c, rec = newCtx(e, httptest.NewRequest(stdhttp.MethodGet, "/admin/loans/pending", nil), adminID, profile.RoleAdmin)
	_ = h.ListPending(c)
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("read failure: status = %d, want 500", rec.Code)
	}
}
