package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/guard"
)

const loginFailed = "Login failed. Please check your credentials."

type AuthHandler struct {
	sessions *middleware.Registry
}

func NewAuthHandler(sessions *middleware.Registry) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	LoggedIn bool             `json:"loggedIn"`
	Message  string           `json:"message,omitempty"`
	Verified *bool            `json:"verified,omitempty"`
	Identity *domain.Identity `json:"identity,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

// Login exchanges credentials for a backend session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	ctx := c.Request().Context()
	resp, err := ws.Session.Login(ctx, req)
	if err != nil {
		return err
	}

	if resp == nil || resp.AccessToken == "" || !ws.Session.IsAuthenticated(ctx) {
		out := loginResponse{Message: loginFailed}
		if resp != nil {
			out.Verified = resp.Verified
			if resp.Message != "" {
				out.Message = resp.Message
			}
		}
		return c.JSON(http.StatusOK, out)
	}

	return c.JSON(http.StatusOK, loginResponse{
		LoggedIn: true,
		Message:  resp.Message,
		Verified: resp.Verified,
		Identity: ws.Session.CurrentIdentity(ctx),
		Redirect: guard.DashboardRoute,
	})
}

// Logout ends the portal session and forgets its stored state.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := ws.Session.Logout(ctx); err != nil {
		return err
	}
	if err := h.sessions.Drop(ctx, ws.ID); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.NoContent(http.StatusNoContent)
}

// Register creates a patient account.
//
// @Summary      Register a new patient
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Registration  true  "Registration details"
// @Success      201   {object}  domain.MessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	resp, err := ws.Session.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// ForgotPassword requests a reset link.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  domain.MessageResponse
// @Failure      422   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	resp, err := ws.Session.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword sets a new password from a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.PasswordReset  true  "Reset token and new password"
// @Success      200   {object}  domain.MessageResponse
// @Failure      422   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	var req domain.PasswordReset
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	resp, err := ws.Session.ResetPassword(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
