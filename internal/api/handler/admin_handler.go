package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
)

// AdminHandler serves the user directory and the admin dashboards.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type directoryQuery struct {
	Search string      `query:"search"`
	Role   domain.Role `query:"role"`
}

type directoryResponse struct {
	Users []domain.DirectoryEntry `json:"users"`
	Total int                     `json:"total"`
}

func newDirectoryResponse(all []domain.DirectoryEntry, q directoryQuery) directoryResponse {
	return directoryResponse{Users: service.FilterEntries(all, q.Search, q.Role), Total: len(all)}
}

// Users loads the directory and applies the optional filter.
//
// @Summary      User directory
// @Tags         admin
// @Produce      json
// @Param        search  query     string  false  "Matches first name, last name or email"
// @Param        role    query     string  false  "ROLE_ADMIN, ROLE_DOCTOR or ROLE_PATIENT"
// @Success      200     {object}  directoryResponse
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var q directoryQuery
	if err := c.Bind(&q); err != nil {
		return badPayload()
	}
	all, err := ws.Directory.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDirectoryResponse(all, q))
}

// BlockUser disables an account and returns the reloaded directory.
//
// @Summary      Block user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  directoryResponse
// @Router       /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	return h.mutate(c, (*service.UserDirectory).Block)
}

// UnblockUser re-enables an account and returns the reloaded directory.
//
// @Summary      Unblock user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  directoryResponse
// @Router       /admin/users/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c echo.Context) error {
	return h.mutate(c, (*service.UserDirectory).Unblock)
}

// DeleteUser removes an account and returns the reloaded directory.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  directoryResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	return h.mutate(c, (*service.UserDirectory).Delete)
}

type directoryAction func(*service.UserDirectory, context.Context, int64) ([]domain.DirectoryEntry, error)

func (h *AdminHandler) mutate(c echo.Context, fn directoryAction) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	all, err := fn(ws.Directory, c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDirectoryResponse(all, directoryQuery{}))
}

// Doctors loads the doctors tab.
//
// @Summary      Doctors
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.DirectoryEntry
// @Router       /admin/doctors [get]
func (h *AdminHandler) Doctors(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	rows, err := ws.Directory.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// DoctorDetails shows one doctor's schedule and feedback.
//
// @Summary      Doctor details
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Doctor id"
// @Success      200  {object}  service.DoctorDetails
// @Router       /admin/doctors/{id} [get]
func (h *AdminHandler) DoctorDetails(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	details, err := ws.Directory.DoctorDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// SystemLogs lists audit log entries.
//
// @Summary      System logs
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.SystemLog
// @Router       /admin/logs [get]
func (h *AdminHandler) SystemLogs(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	logs, err := ws.Directory.SystemLogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// Analytics returns platform-wide counters.
//
// @Summary      Analytics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.DashboardAnalytics
// @Router       /admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	a, err := ws.Directory.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Announce sends an announcement to every user.
//
// @Summary      Send announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Announcement  true  "Subject and message"
// @Success      202   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/announcements [post]
func (h *AdminHandler) Announce(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req domain.Announcement
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := ws.Directory.Announce(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Announcement sent."})
}
