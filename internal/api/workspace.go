package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/infrastructure/gateway"
)

// Backend locates the appointment platform.
type Backend struct {
	APIBaseURL  string
	AuthBaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewWorkspaceBuilder wires one session's services against the backend.
// The auth client is shared; the api client carries the session's token.
func NewWorkspaceBuilder(b Backend, log zerolog.Logger) middleware.WorkspaceBuilder {
	hc := b.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	auth := gateway.NewAuthGateway(gateway.NewClient("auth", b.AuthBaseURL,
		gateway.WithHTTPClient(hc),
		gateway.WithLogger(log),
	))

	return func(id string, store ports.ClientStorage) middleware.WorkspaceParts {
		l := log.With().Str("session", id).Logger()
		session := service.NewSession(auth, store, service.WithLogger(l))

		client := gateway.NewClient("api", b.APIBaseURL,
			gateway.WithHTTPClient(hc),
			gateway.WithTokens(session),
			gateway.WithLogger(l),
		)
		appointments := gateway.NewAppointmentGateway(client)
		doctors := gateway.NewDoctorGateway(client)

		return middleware.WorkspaceParts{
			Session:      session,
			Appointments: service.NewAppointmentBoard(appointments, l),
			Search:       service.NewDoctorSearch(doctors, l),
			Directory:    service.NewUserDirectory(gateway.NewAdminGateway(client), l),
			Profile:      service.NewProfile(gateway.NewUserGateway(client)),
			NewBooking: func() *service.BookingFlow {
				return service.NewBookingFlow(appointments, doctors, l)
			},
			NewDesk: func(doctorID int64) *service.DoctorDesk {
				return service.NewDoctorDesk(doctors, doctorID, l, nil)
			},
		}
	}
}
