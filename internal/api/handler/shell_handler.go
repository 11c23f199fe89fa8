package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
)

// ShellHandler serves the navigation chrome, the dashboard and the
// caller's own profile.
type ShellHandler struct{}

func NewShellHandler() *ShellHandler {
	return &ShellHandler{}
}

type dashboardResponse struct {
	service.ShellView
	Links []string `json:"links"`
}

// Shell returns the login state and role flags.
//
// @Summary      Navigation state
// @Tags         shell
// @Produce      json
// @Success      200  {object}  service.ShellView
// @Router       /shell [get]
func (h *ShellHandler) Shell(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.Shell(c.Request().Context(), ws.Session))
}

// Dashboard lists the screens the caller's role can open.
//
// @Summary      Dashboard
// @Tags         shell
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      303
// @Router       /dashboard [get]
func (h *ShellHandler) Dashboard(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	view := service.Shell(c.Request().Context(), ws.Session)
	return c.JSON(http.StatusOK, dashboardResponse{ShellView: view, Links: links(view)})
}

func links(v service.ShellView) []string {
	out := []string{"/profile"}
	switch {
	case v.IsAdmin:
		out = append(out, "/admin/users", "/admin/doctors", "/admin/logs", "/admin/analytics")
	case v.IsDoctor:
		out = append(out, "/doctor-dashboard", "/doctor/upcoming", "/doctor/history", "/doctor/waitlist", "/doctor/profile")
	default:
		out = append(out, "/doctor-search", "/my-appointments")
	}
	return out
}

// GetProfile returns the caller's account.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Router       /profile [get]
func (h *ShellHandler) GetProfile(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := ws.Profile.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateProfile changes the caller's name and contact details.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200   {object}  domain.UserProfile
// @Failure      422   {object}  map[string]string
// @Router       /profile [put]
func (h *ShellHandler) UpdateProfile(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req domain.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	p, err := ws.Profile.Update(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
