package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// AppointmentBoard is the patient's "my appointments" list. Every successful
// mutation is followed by a full reload; the list is never patched locally.
type AppointmentBoard struct {
	gw  ports.AppointmentGateway
	log zerolog.Logger

	mu    sync.Mutex
	items []domain.Appointment
}

func NewAppointmentBoard(gw ports.AppointmentGateway, log zerolog.Logger) *AppointmentBoard {
	return &AppointmentBoard{gw: gw, log: log}
}

// Load fetches the list. On failure the previous list is kept.
func (b *AppointmentBoard) Load(ctx context.Context) ([]domain.Appointment, error) {
	items, err := b.gw.MyAppointments(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("load appointments")
		return b.Appointments(), err
	}

	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return b.Appointments(), nil
}

// Appointments returns a copy of the last loaded list.
func (b *AppointmentBoard) Appointments() []domain.Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Appointment, len(b.items))
	copy(out, b.items)
	return out
}

func (b *AppointmentBoard) Cancel(ctx context.Context, appointmentID int64) ([]domain.Appointment, error) {
	if _, err := b.gw.Cancel(ctx, appointmentID); err != nil {
		return b.Appointments(), err
	}
	b.log.Info().Int64("appointment_id", appointmentID).Msg("appointment cancelled")
	return b.Load(ctx)
}

// Reschedule moves an appointment. newDateTime is YYYY-MM-DDTHH:mm with
// optional seconds.
func (b *AppointmentBoard) Reschedule(ctx context.Context, appointmentID int64, newDateTime string) ([]domain.Appointment, error) {
	normalized, err := normalizeDateTime(newDateTime)
	if err != nil {
		return b.Appointments(), err
	}
	if _, err := b.gw.Reschedule(ctx, appointmentID, domain.RescheduleRequest{NewAppointmentDateTime: normalized}); err != nil {
		return b.Appointments(), err
	}
	b.log.Info().Int64("appointment_id", appointmentID).Str("at", normalized).Msg("appointment rescheduled")
	return b.Load(ctx)
}

func normalizeDateTime(s string) (string, error) {
	if validation.Var("newAppointmentDateTime", s, "datetime=2006-01-02T15:04:05") == nil {
		return s, nil
	}
	if err := validation.Var("newAppointmentDateTime", s, "required,datetime=2006-01-02T15:04"); err != nil {
		return "", fmt.Errorf("reschedule: %w", err)
	}
	return s + ":00", nil
}
