package http

import (
	"errors"
	"net/http"

	"farmlend-backend/internal/domain/loan"
	"farmlend-backend/internal/domain/profile"
	"farmlend-backend/internal/session"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors to HTTP codes. Anything unrecognized gets
// fallback: 500 on reads, 400 with the store's message on writes.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrExceedsRemaining), errors.Is(err, loan.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrNotInvestable):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoSession), errors.Is(err, profile.ErrNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, profile.ErrUnknownRole), errors.Is(err, profile.ErrForbidden):
		return http.StatusForbidden
	}
	return fallback
}

func writeError(c echo.Context, err error, fallback int) error {
	resp := ErrorResponse{Error: err.Error()}
	var ex *loan.ExceedsRemainingError
	if errors.As(err, &ex) {
		resp.Details = []FieldError{{Field: "amount", Message: ex.Error()}}
	}
	return c.JSON(statusFor(err, fallback), resp)
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// identity is the caller set by the auth middleware.
func identity(c echo.Context) (session.Identity, error) {
	return session.FromContext(c.Request().Context())
}
