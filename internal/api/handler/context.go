package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
)

// ctxWorkspace returns the caller's workspace and fails fast when the
// session middleware did not run.
func ctxWorkspace(c echo.Context) (*middleware.Workspace, error) {
	ws := middleware.WorkspaceFrom(c)
	if ws == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing session")
	}
	return ws, nil
}

// ctxIdentity returns the workspace together with the identity the Auth
// middleware injected. A route behind Auth always has both.
func ctxIdentity(c echo.Context) (*middleware.Workspace, *domain.Identity, error) {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return nil, nil, err
	}
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, nil, domain.ErrNotAuthenticated
	}
	return ws, id, nil
}

// idParam binds a positive numeric :id path parameter.
type idParam struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func bindID(c echo.Context) (int64, error) {
	var p idParam
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := c.Validate(&p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// badPayload is returned when a request body cannot be bound.
func badPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
