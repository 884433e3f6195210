package http

import (
	"net/http"

	"farmlend-backend/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct{ uc *review.Usecase }

func NewReviewHandler(uc *review.Usecase) *ReviewHandler { return &ReviewHandler{uc: uc} }

type reviewLoanReq struct {
	LoanID string `param:"loan_id"     validate:"required,hex32"`
	Notes  string `json:"admin_notes" validate:"max=2000"`
}

func (h *ReviewHandler) bind(c echo.Context) (*reviewLoanReq, error) {
	var req reviewLoanReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, validationFailed(c, err)
	}
	return &req, nil
}

func (h *ReviewHandler) Approve(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	req, err := h.bind(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), id.UserID(), req.LoanID, req.Notes)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) Reject(c echo.Context) error {
	req, err := h.bind(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), req.LoanID, req.Notes)
	if err != nil {
		return writeError(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, out)
}
