package http

import (
	"farmlend-backend/internal/adapter/middleware"
	"farmlend-backend/internal/domain/profile"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health      *Handler
	Session     *SessionHandler
	Loans       *LoanHandler
	Reviews     *ReviewHandler
	Investments *InvestmentHandler
	Dashboards  *DashboardHandler
}

// RegisterRoutes mounts the API. auth must put a session.Identity on the
// request; idem guards the mutating routes and runs after auth.
func RegisterRoutes(e *echo.Echo, h Handlers, auth, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("", auth)
	api.GET("/me", h.Session.Me)
	api.POST("/session/sign-out", h.Session.SignOut)
	api.GET("/dashboard", h.Dashboards.Dashboard)
	api.GET("/loans/:loan_id", h.Loans.Get)

	farmer := middleware.RequireRole(profile.RoleFarmer)
	investor := middleware.RequireRole(profile.RoleInvestor)
	admin := middleware.RequireRole(profile.RoleAdmin)

	api.POST("/loans", h.Loans.Apply, farmer, idem)
	api.GET("/farmer/loans", h.Loans.ListMine, farmer)

	api.GET("/admin/loans/pending", h.Reviews.ListPending, admin)
	api.POST("/admin/loans/:loan_id/approve", h.Reviews.Approve, admin, idem)
	api.POST("/admin/loans/:loan_id/reject", h.Reviews.Reject, admin, idem)

	api.GET("/investor/loans/available", h.Dashboards.Available, investor)
	api.GET("/investor/investments", h.Investments.ListMine, investor)
	api.GET("/loans/:loan_id/quote", h.Investments.Quote, investor)
	api.POST("/loans/:loan_id/investments", h.Investments.Invest, investor, idem)
}
