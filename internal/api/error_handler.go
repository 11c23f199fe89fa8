package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// errorResponse is the canonical error envelope for all portal errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

// fieldErrors is implemented by backend errors carrying per-field messages.
type fieldErrors interface {
	FieldErrors() map[string]string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps validation, backend and flow errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, rate limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error()}
	}

	// Backend responses keep their status and server message.
	if status, msg, ok := domain.StatusOf(err); ok {
		if msg == "" {
			msg = http.StatusText(status)
		}
		resp := errorResponse{Error: msg}
		var fe fieldErrors
		if errors.As(err, &fe) {
			resp.Errors = fe.FieldErrors()
		}
		return status, resp
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrWaitlistNotOffered),
		errors.Is(err, domain.ErrBookingInFlight),
		errors.Is(err, domain.ErrBookingSettled):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	}

	// The backend could not be reached at all.
	var ue *url.Error
	if errors.As(err, &ue) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusBadGateway, errorResponse{Error: "backend unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
