package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/guard"
)

// RBAC requires the identity injected by Auth to hold exactly role.
// Anyone else is redirected to the dashboard.
func RBAC(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.RequireRole(IdentityFrom(c), role)
			if !d.Allow {
				return c.Redirect(http.StatusSeeOther, d.Redirect)
			}
			return next(c)
		}
	}
}
