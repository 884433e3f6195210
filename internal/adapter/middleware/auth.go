package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"farmlend-backend/internal/domain/profile"
	"farmlend-backend/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SessionReader interface {
	Get(ctx context.Context, token string) (session.Session, error)
}

type ProfileResolver interface {
	Resolve(ctx context.Context, s session.Session) (*profile.Profile, error)
}

func bearerToken(h string) string {
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// Auth resolves the bearer token to a session and profile and stores the
// resulting session.Identity on the request context.
func Auth(sessions SessionReader, profiles ProfileResolver, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			sess, err := sessions.Get(req.Context(), token)
			if errors.Is(err, session.ErrNoSession) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			if err != nil {
				log.Error("session lookup failed", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}

			p, err := profiles.Resolve(req.Context(), sess)
			switch {
			case errors.Is(err, profile.ErrNotFound):
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "no profile for session"})
			case errors.Is(err, profile.ErrUnknownRole):
				return c.JSON(http.StatusForbidden, map[string]string{"error": profile.ErrUnknownRole.Error()})
			case err != nil:
				log.Error("profile lookup failed", zap.String("user_id", sess.UserID), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}

			ctx := session.WithIdentity(req.Context(), session.Identity{Session: sess, Profile: p})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...profile.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := session.FromContext(c.Request().Context())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			if !slices.Contains(roles, ident.Role()) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": profile.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}
