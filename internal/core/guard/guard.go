// Package guard decides whether a navigation may proceed. Guards are pure:
// they read the caller's identity and return a Decision, nothing else.
package guard

import "github.com/carepoint/appointment-portal/internal/core/domain"

// Fallback routes for denied navigations.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
)

type Decision struct {
	Allow    bool
	Redirect string
}

var allow = Decision{Allow: true}

// Authenticated lets any live session through and sends the rest to login.
func Authenticated(authenticated bool) Decision {
	if authenticated {
		return allow
	}
	return Decision{Redirect: LoginRoute}
}

// RequireRole allows only an identity whose role equals required.
func RequireRole(identity *domain.Identity, required domain.Role) Decision {
	if identity != nil && identity.Role == required {
		return allow
	}
	return Decision{Redirect: DashboardRoute}
}
