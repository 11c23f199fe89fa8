package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/metrics"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// BookingState is the position of a booking attempt in its lifecycle.
type BookingState int

const (
	BookingIdle BookingState = iota
	BookingSubmitting
	BookingConfirmed
	BookingConflicted
	BookingFailed
	BookingJoined
	BookingWaitlistFailed
)

func (s BookingState) String() string {
	switch s {
	case BookingIdle:
		return "idle"
	case BookingSubmitting:
		return "submitting"
	case BookingConfirmed:
		return "confirmed"
	case BookingConflicted:
		return "conflicted"
	case BookingFailed:
		return "failed"
	case BookingJoined:
		return "joined"
	case BookingWaitlistFailed:
		return "waitlist_failed"
	default:
		return "unknown"
	}
}

func (s BookingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DefaultConflictMessage is shown when a 409 carries no message.
const DefaultConflictMessage = "The selected slot is already booked. Would you like to join the waitlist for this day?"

// BookingInput identifies the slot a patient wants.
type BookingInput struct {
	DoctorID  int64  `json:"doctorId"  validate:"gt=0"`
	Date      string `json:"date"      validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,clocktime"`
}

// AppointmentDateTime combines date and start time as YYYY-MM-DDTHH:mm:ss.
func (in BookingInput) AppointmentDateTime() string {
	return in.Date + "T" + withSeconds(in.StartTime)
}

// BookingView is the read-only state of a BookingFlow.
type BookingView struct {
	State           BookingState                `json:"state"`
	DoctorID        int64                       `json:"doctorId"`
	Date            string                      `json:"date"`
	StartTime       string                      `json:"startTime"`
	Confirmation    *domain.BookingConfirmation `json:"confirmation,omitempty"`
	ConflictMessage string                      `json:"conflictMessage,omitempty"`
	WaitlistOffered bool                        `json:"waitlistOffered"`
	WaitlistMessage string                      `json:"waitlistMessage,omitempty"`
	Waitlist        *domain.WaitlistEntry       `json:"waitlist,omitempty"`
	Error           string                      `json:"error,omitempty"`
}

// BookingFlow drives one booking attempt and its single waitlist fallback.
type BookingFlow struct {
	appointments ports.AppointmentGateway
	doctors      ports.DoctorGateway
	log          zerolog.Logger

	mu           sync.Mutex
	input        BookingInput
	state        BookingState
	confirmation *domain.BookingConfirmation
	conflictMsg  string
	joined       *domain.WaitlistJoinResult
	lastErr      error
}

func NewBookingFlow(appointments ports.AppointmentGateway, doctors ports.DoctorGateway, log zerolog.Logger) *BookingFlow {
	return &BookingFlow{appointments: appointments, doctors: doctors, log: log}
}

// Prefill sets the slot shown before the first attempt. It is ignored once an
// attempt has been made.
func (f *BookingFlow) Prefill(in BookingInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == BookingIdle {
		f.input = in
	}
}

// AttemptBook reserves the slot. A 409 moves the flow to Conflicted and is
// not returned as an error; any other failure moves it to Failed and is
// returned. Invalid input leaves the flow untouched.
func (f *BookingFlow) AttemptBook(ctx context.Context, in BookingInput) (BookingView, error) {
	if err := validation.Struct(in); err != nil {
		return f.View(), err
	}

	f.mu.Lock()
	switch f.state {
	case BookingSubmitting:
		f.mu.Unlock()
		return f.View(), domain.ErrBookingInFlight
	case BookingConfirmed, BookingJoined:
		f.mu.Unlock()
		return f.View(), domain.ErrBookingSettled
	}
	f.input = in
	f.state = BookingSubmitting
	f.conflictMsg = ""
	f.lastErr = nil
	f.mu.Unlock()

	conf, err := f.appointments.Book(ctx, domain.BookingRequest{
		DoctorID:            in.DoctorID,
		AppointmentDateTime: in.AppointmentDateTime(),
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		f.state = BookingConfirmed
		f.confirmation = conf
		metrics.BookingOutcomesTotal.WithLabelValues("confirmed").Inc()
		f.log.Info().Int64("doctor_id", in.DoctorID).Str("at", in.AppointmentDateTime()).Msg("appointment booked")
		return f.view(), nil
	}

	if status, msg, ok := domain.StatusOf(err); ok && status == http.StatusConflict {
		if msg == "" {
			msg = DefaultConflictMessage
		}
		f.state = BookingConflicted
		f.conflictMsg = msg
		metrics.BookingOutcomesTotal.WithLabelValues("conflicted").Inc()
		f.log.Info().Int64("doctor_id", in.DoctorID).Str("at", in.AppointmentDateTime()).Msg("slot already booked")
		return f.view(), nil
	}

	f.state = BookingFailed
	f.lastErr = err
	metrics.BookingOutcomesTotal.WithLabelValues("failed").Inc()
	f.log.Warn().Err(err).Int64("doctor_id", in.DoctorID).Msg("booking failed")
	return f.view(), err
}

// JoinWaitlist asks for a place on the doctor's waitlist for the attempted
// date. It is only offered from Conflicted and only once per attempt.
func (f *BookingFlow) JoinWaitlist(ctx context.Context) (BookingView, error) {
	f.mu.Lock()
	if f.state != BookingConflicted {
		f.mu.Unlock()
		return f.View(), domain.ErrWaitlistNotOffered
	}
	in := f.input
	f.state = BookingSubmitting
	f.mu.Unlock()

	res, err := f.doctors.JoinWaitlist(ctx, in.DoctorID, in.Date)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = BookingWaitlistFailed
		f.lastErr = err
		metrics.BookingOutcomesTotal.WithLabelValues("waitlist_failed").Inc()
		f.log.Warn().Err(err).Int64("doctor_id", in.DoctorID).Str("date", in.Date).Msg("waitlist join failed")
		return f.view(), err
	}

	f.state = BookingJoined
	f.joined = res
	metrics.BookingOutcomesTotal.WithLabelValues("joined").Inc()
	f.log.Info().Int64("doctor_id", in.DoctorID).Str("date", in.Date).Msg("joined waitlist")
	return f.view(), nil
}

// View returns a copy of the current state.
func (f *BookingFlow) View() BookingView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *BookingFlow) view() BookingView {
	v := BookingView{
		State:           f.state,
		DoctorID:        f.input.DoctorID,
		Date:            f.input.Date,
		StartTime:       f.input.StartTime,
		Confirmation:    f.confirmation,
		ConflictMessage: f.conflictMsg,
		WaitlistOffered: f.state == BookingConflicted,
	}
	if f.joined != nil {
		v.WaitlistMessage = f.joined.Message
		v.Waitlist = f.joined.Data
	}
	if f.lastErr != nil {
		v.Error = f.lastErr.Error()
	}
	return v
}
