package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
)

type stubDesk struct {
	ports.DoctorGateway
	upcomingFn  func(ctx context.Context, doctorID int64) ([]domain.UpcomingAppointment, error)
	confirmed   []int64
	upcomingIDs []int64
}

func (s *stubDesk) Upcoming(ctx context.Context, doctorID int64) ([]domain.UpcomingAppointment, error) {
	s.upcomingIDs = append(s.upcomingIDs, doctorID)
	return s.upcomingFn(ctx, doctorID)
}

func (s *stubDesk) Confirm(_ context.Context, _, appointmentID int64) (*domain.AppointmentAction, error) {
	s.confirmed = append(s.confirmed, appointmentID)
	return &domain.AppointmentAction{AppointmentID: appointmentID, NewStatus: "CONFIRMED"}, nil
}

func newDeskFixture(gw *stubDesk) *fixture {
	return newPartsFixture(func(s *service.Session) middleware.WorkspaceParts {
		return middleware.WorkspaceParts{
			Session: s,
			NewDesk: func(doctorID int64) *service.DoctorDesk {
				return service.NewDoctorDesk(gw, doctorID, zerolog.Nop(), nil)
			},
		}
	})
}

func doctorChain() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.Auth(), middleware.RBAC(domain.RoleDoctor)}
}

func TestDoctorHandler_Dashboard_Stats(t *testing.T) {
	today := time.Now().Format(time.DateOnly)
	gw := &stubDesk{upcomingFn: func(context.Context, int64) ([]domain.UpcomingAppointment, error) {
		return []domain.UpcomingAppointment{
			{AppointmentID: 1, PatientName: "Ann", AppointmentDateTime: today + "T09:00:00"},
			{AppointmentID: 2, PatientName: "Bob", AppointmentDateTime: today + "T10:00:00"},
			{AppointmentID: 3, PatientName: "Ann", AppointmentDateTime: "2099-01-01T09:00:00"},
		}, nil
	}}
	f := newDeskFixture(gw)
	f.login(t, 5, "ROLE_DOCTOR")

	rec, err := f.call(http.MethodGet, "/doctor-dashboard", "", nil, NewDoctorHandler().Dashboard, doctorChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats service.DeskStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if stats.TodayAppointments != 2 || stats.TotalPatients != 2 || stats.NextPatient != "Ann" {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(gw.upcomingIDs) != 1 || gw.upcomingIDs[0] != 5 {
		t.Fatalf("expected the queue of doctor 5, got %v", gw.upcomingIDs)
	}
}

func TestDoctorHandler_Confirm_ReloadsQueue(t *testing.T) {
	gw := &stubDesk{upcomingFn: func(context.Context, int64) ([]domain.UpcomingAppointment, error) {
		return []domain.UpcomingAppointment{{AppointmentID: 9, PatientName: "Ann", Status: "CONFIRMED"}}, nil
	}}
	f := newDeskFixture(gw)
	f.login(t, 5, "ROLE_DOCTOR")

	rec, err := f.call(http.MethodPut, "/doctor/upcoming/9/confirm", "", map[string]string{"id": "9"},
		NewDoctorHandler().Confirm, middleware.Auth())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp actionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Action == nil || resp.Action.AppointmentID != 9 || resp.Action.NewStatus != "CONFIRMED" {
		t.Fatalf("unexpected action %+v", resp.Action)
	}
	if len(resp.Upcoming) != 1 || resp.Upcoming[0].Status != "CONFIRMED" {
		t.Fatalf("expected reloaded queue, got %+v", resp.Upcoming)
	}
	if len(gw.confirmed) != 1 || gw.confirmed[0] != 9 {
		t.Fatalf("expected appointment 9 to be confirmed, got %v", gw.confirmed)
	}
}

func TestDoctorHandler_Confirm_InvalidID(t *testing.T) {
	gw := &stubDesk{}
	f := newDeskFixture(gw)
	f.login(t, 5, "ROLE_DOCTOR")

	_, err := f.call(http.MethodPut, "/doctor/upcoming/abc/confirm", "", map[string]string{"id": "abc"},
		NewDoctorHandler().Confirm, middleware.Auth())
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(gw.confirmed) != 0 {
		t.Fatalf("backend must not be called")
	}
}
