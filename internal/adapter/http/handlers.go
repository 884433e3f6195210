package http

import (
	"context"
	"net/http"
	"time"

	"farmlend-backend/internal/domain/profile"
	"farmlend-backend/internal/usecase/dashboard"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type SessionSigner interface {
	SignOut(ctx context.Context, token string) error
}

type SessionHandler struct{ sessions SessionSigner }

func NewSessionHandler(s SessionSigner) *SessionHandler { return &SessionHandler{sessions: s} }

// Me returns the caller's profile.
func (h *SessionHandler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, id.Profile)
}

func (h *SessionHandler) SignOut(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	if err := h.sessions.SignOut(c.Request().Context(), id.Session.Token); err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler { return &DashboardHandler{uc: uc} }

// Dashboard renders the dashboard for the caller's role.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err, http.StatusUnauthorized)
	}
	ctx := c.Request().Context()

	var out any
	switch id.Role() {
	case profile.RoleFarmer:
		out, err = h.uc.Farmer(ctx, id.UserID())
	case profile.RoleInvestor:
		out, err = h.uc.Investor(ctx, id.UserID())
	case profile.RoleAdmin:
		out, err = h.uc.Admin(ctx)
	default:
		err = profile.ErrUnknownRole
	}
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) Available(c echo.Context) error {
	out, err := h.uc.Available(c.Request().Context())
	if err != nil {
		return writeError(c, err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, out)
}
