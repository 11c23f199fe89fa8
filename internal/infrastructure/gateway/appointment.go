package gateway

import (
	"context"
	"net/http"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
)

type AppointmentGateway struct {
	c *Client
}

var _ ports.AppointmentGateway = (*AppointmentGateway)(nil)

func NewAppointmentGateway(c *Client) *AppointmentGateway {
	return &AppointmentGateway{c: c}
}

func (g *AppointmentGateway) MyAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := g.c.do(ctx, call{op: "my_appointments", method: http.MethodGet, path: "/appointments/my-appointments"}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Book returns *APIError with status 409 when the slot is taken.
func (g *AppointmentGateway) Book(ctx context.Context, req domain.BookingRequest) (*domain.BookingConfirmation, error) {
	var out domain.BookingConfirmation
	if err := g.c.do(ctx, call{op: "book", method: http.MethodPost, path: "/appointments/book", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AppointmentGateway) Cancel(ctx context.Context, appointmentID int64) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := g.c.do(ctx, call{
		op:     "cancel",
		method: http.MethodPut,
		path:   path("/appointments/%d/cancel", appointmentID),
		body:   struct{}{},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AppointmentGateway) Reschedule(ctx context.Context, appointmentID int64, req domain.RescheduleRequest) (*domain.Appointment, error) {
	var out domain.Appointment
	err := g.c.do(ctx, call{
		op:     "reschedule",
		method: http.MethodPut,
		path:   path("/appointments/%d/reschedule", appointmentID),
		body:   req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
