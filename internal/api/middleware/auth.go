package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/guard"
)

const ctxIdentity = "identity"

// Auth lets only live sessions through and injects the caller's identity
// into context. Denied requests are redirected to the login route.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws := WorkspaceFrom(c)
			if ws == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
			}

			ctx := c.Request().Context()
			d := guard.Authenticated(ws.Session.IsAuthenticated(ctx))
			if !d.Allow {
				return c.Redirect(http.StatusSeeOther, d.Redirect)
			}

			c.Set(ctxIdentity, ws.Session.CurrentIdentity(ctx))
			return next(c)
		}
	}
}

// IdentityFrom returns the identity Auth injected, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(ctxIdentity).(*domain.Identity)
	return id
}
