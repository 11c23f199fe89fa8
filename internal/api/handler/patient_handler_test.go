package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
)

type backendErr struct {
	status int
	msg    string
}

func (e *backendErr) Error() string         { return fmt.Sprintf("backend returned %d", e.status) }
func (e *backendErr) HTTPStatus() int       { return e.status }
func (e *backendErr) ServerMessage() string { return e.msg }

var slot = map[string]string{"doctorId": "3", "date": "2026-11-02", "startTime": "09:30"}

func patientChain() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.Auth(), middleware.RBAC(domain.RolePatient)}
}

// bookingJSON is BookingView as it appears on the wire.
type bookingJSON struct {
	State           string `json:"state"`
	ConflictMessage string `json:"conflictMessage"`
	WaitlistOffered bool   `json:"waitlistOffered"`
	WaitlistMessage string `json:"waitlistMessage"`
}

func decodeView(t *testing.T, body []byte) bookingJSON {
	t.Helper()
	var v bookingJSON
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return v
}

func TestPatientHandler_Book_Confirmed(t *testing.T) {
	f := newFixture(&stubAuthGateway{}, &stubAppointments{
		bookFn: func(_ context.Context, req domain.BookingRequest) (*domain.BookingConfirmation, error) {
			if req.DoctorID != 3 || req.AppointmentDateTime != "2026-11-02T09:30:00" {
				t.Fatalf("unexpected booking request %+v", req)
			}
			return &domain.BookingConfirmation{Success: true, Message: "Booked"}, nil
		},
	}, nil)
	f.login(t, 7, "ROLE_PATIENT")

	rec, err := f.call(http.MethodPost, "/book/3/2026-11-02/09:30", "", slot, NewPatientHandler().Book, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v := decodeView(t, rec.Body.Bytes()); v.State != "confirmed" {
		t.Fatalf("expected confirmed, got %q", v.State)
	}
}

func TestPatientHandler_Book_ConflictThenWaitlist(t *testing.T) {
	joined := false
	f := newFixture(&stubAuthGateway{}, &stubAppointments{
		bookFn: func(context.Context, domain.BookingRequest) (*domain.BookingConfirmation, error) {
			return nil, &backendErr{status: http.StatusConflict}
		},
	}, &stubDoctors{
		joinFn: func(_ context.Context, doctorID int64, date string) (*domain.WaitlistJoinResult, error) {
			if doctorID != 3 || date != "2026-11-02" {
				t.Fatalf("unexpected waitlist join %d %s", doctorID, date)
			}
			joined = true
			return &domain.WaitlistJoinResult{Success: true, Message: "Added to waitlist"}, nil
		},
	})
	f.login(t, 7, "ROLE_PATIENT")
	h := NewPatientHandler()

	rec, err := f.call(http.MethodPost, "/book/3/2026-11-02/09:30", "", slot, h.Book, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	v := decodeView(t, rec.Body.Bytes())
	if v.State != "conflicted" || !v.WaitlistOffered {
		t.Fatalf("expected conflicted with waitlist offered, got %+v", v)
	}
	if v.ConflictMessage != service.DefaultConflictMessage {
		t.Fatalf("expected default conflict message, got %q", v.ConflictMessage)
	}

	rec, err = f.call(http.MethodPost, "/book/waitlist", "", nil, h.JoinWaitlist, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	v = decodeView(t, rec.Body.Bytes())
	if !joined || v.State != "joined" || v.WaitlistMessage != "Added to waitlist" {
		t.Fatalf("expected joined, got %+v", v)
	}
}

func TestPatientHandler_JoinWaitlist_NotOffered(t *testing.T) {
	f := newFixture(&stubAuthGateway{}, &stubAppointments{}, &stubDoctors{})
	f.login(t, 7, "ROLE_PATIENT")

	_, err := f.call(http.MethodPost, "/book/waitlist", "", nil, NewPatientHandler().JoinWaitlist, patientChain()...)
	if !errors.Is(err, domain.ErrWaitlistNotOffered) {
		t.Fatalf("expected ErrWaitlistNotOffered, got %v", err)
	}
}

func TestPatientHandler_Book_Failed(t *testing.T) {
	f := newFixture(&stubAuthGateway{}, &stubAppointments{
		bookFn: func(context.Context, domain.BookingRequest) (*domain.BookingConfirmation, error) {
			return nil, &backendErr{status: http.StatusInternalServerError, msg: "boom"}
		},
	}, nil)
	f.login(t, 7, "ROLE_PATIENT")

	rec, err := f.call(http.MethodPost, "/book/3/2026-11-02/09:30", "", slot, NewPatientHandler().Book, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	v := decodeView(t, rec.Body.Bytes())
	if v.State != "failed" || v.WaitlistOffered {
		t.Fatalf("expected failed without waitlist, got %+v", v)
	}
}

func TestPatientHandler_Book_DoctorRedirected(t *testing.T) {
	f := newFixture(&stubAuthGateway{}, &stubAppointments{}, nil)
	f.login(t, 9, "ROLE_DOCTOR")

	rec, err := f.call(http.MethodPost, "/book/3/2026-11-02/09:30", "", slot, NewPatientHandler().Book, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestPatientHandler_Book_Anonymous(t *testing.T) {
	f := newFixture(&stubAuthGateway{}, &stubAppointments{}, nil)

	rec, err := f.call(http.MethodPost, "/book/3/2026-11-02/09:30", "", slot, NewPatientHandler().Book, patientChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}
