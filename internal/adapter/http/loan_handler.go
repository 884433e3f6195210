package http

import (
	"net/http"
	"strings"

	"farmlend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	AmountRequested float64 `json:"amount_requested" validate:"gt=0,dec2"`
	DurationMonths  int     `json:"duration_months"  validate:"gte=1,lte=60"`
	InterestRate    float64 `json:"interest_rate"    validate:"gte=0,lte=20,dec2"`
	Purpose         string  `json:"purpose"          validate:"required"`
}

type loanPath struct {
	LoanID string `param:"loan_id" validate:"required,hex32"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	req.Purpose = strings.TrimSpace(req.Purpose)
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.Apply(c.Request().Context(), id.UserID(), loan.ApplyInput{
		AmountRequested: req.AmountRequested,
		DurationMonths:  req.DurationMonths,
		InterestRate:    req.InterestRate,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	var p loanPath
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	if err := c.Validate(&p); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), p.LoanID)
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListMine lists the calling farmer's loans.
func (h *LoanHandler) ListMine(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	out, err := h.uc.ListByFarmer(c.Request().Context(), id.UserID())
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, out)
}
