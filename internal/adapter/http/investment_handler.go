package http

import (
	"net/http"

	"farmlend-backend/internal/usecase/investment"

	"github.com/labstack/echo/v4"
)

type InvestmentHandler struct{ uc *investment.Usecase }

func NewInvestmentHandler(uc *investment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type investReq struct {
	LoanID string  `param:"loan_id" validate:"required,hex32"`
	Amount float64 `json:"amount"   validate:"gt=0,dec2"`
}

type quoteReq struct {
	LoanID string  `param:"loan_id" validate:"required,hex32"`
	Amount float64 `query:"amount"  validate:"gt=0"`
}

func (h *InvestmentHandler) Invest(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	var req investReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.uc.Invest(c.Request().Context(), id.UserID(), req.LoanID, req.Amount)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *InvestmentHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	q, err := h.uc.Quote(c.Request().Context(), req.LoanID, req.Amount)
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, q)
}

// ListMine lists the calling investor's portfolio.
func (h *InvestmentHandler) ListMine(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	out, err := h.uc.ListForInvestor(c.Request().Context(), id.UserID())
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, out)
}
