package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

const noNextPatient = "--"

// DeskStats summarises the upcoming queue on the doctor dashboard.
type DeskStats struct {
	TodayAppointments int    `json:"todayAppointments"`
	TotalPatients     int    `json:"totalPatients"`
	NextPatient       string `json:"nextPatient"`
}

// DoctorDesk holds one doctor's queue, history and waitlist views.
type DoctorDesk struct {
	gw       ports.DoctorGateway
	doctorID int64
	log      zerolog.Logger
	now      func() time.Time

	mu             sync.Mutex
	upcoming       []domain.UpcomingAppointment
	history        []domain.AppointmentHistory
	historyPatient *int64
	waitlist       []domain.WaitlistEntry
	waitlistDate   string
}

func NewDoctorDesk(gw ports.DoctorGateway, doctorID int64, log zerolog.Logger, now func() time.Time) *DoctorDesk {
	if now == nil {
		now = time.Now
	}
	return &DoctorDesk{gw: gw, doctorID: doctorID, log: log, now: now}
}

func (d *DoctorDesk) DoctorID() int64 { return d.doctorID }

// LoadUpcoming fetches the queue. On failure the previous queue is kept.
func (d *DoctorDesk) LoadUpcoming(ctx context.Context) ([]domain.UpcomingAppointment, error) {
	items, err := d.gw.Upcoming(ctx, d.doctorID)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Warn().Err(err).Int64("doctor_id", d.doctorID).Msg("load upcoming")
	} else {
		d.upcoming = items
	}
	return append([]domain.UpcomingAppointment(nil), d.upcoming...), err
}

// Upcoming returns the last loaded queue.
func (d *DoctorDesk) Upcoming() []domain.UpcomingAppointment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.UpcomingAppointment(nil), d.upcoming...)
}

// History returns the last loaded history.
func (d *DoctorDesk) History() []domain.AppointmentHistory {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.AppointmentHistory(nil), d.history...)
}

func (d *DoctorDesk) Confirm(ctx context.Context, appointmentID int64) (*domain.AppointmentAction, error) {
	return d.act(ctx, "confirm", appointmentID, d.gw.Confirm)
}

func (d *DoctorDesk) Decline(ctx context.Context, appointmentID int64) (*domain.AppointmentAction, error) {
	return d.act(ctx, "decline", appointmentID, d.gw.Decline)
}

func (d *DoctorDesk) Complete(ctx context.Context, appointmentID int64) (*domain.AppointmentAction, error) {
	return d.act(ctx, "complete", appointmentID, d.gw.Complete)
}

type queueAction func(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error)

func (d *DoctorDesk) act(ctx context.Context, name string, appointmentID int64, fn queueAction) (*domain.AppointmentAction, error) {
	res, err := fn(ctx, d.doctorID, appointmentID)
	if err != nil {
		return nil, err
	}
	d.log.Info().Str("action", name).Int64("appointment_id", appointmentID).Msg("queue updated")
	if _, err := d.LoadUpcoming(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// LoadHistory fetches past appointments, optionally for one patient.
func (d *DoctorDesk) LoadHistory(ctx context.Context, patientID *int64) ([]domain.AppointmentHistory, error) {
	items, err := d.gw.History(ctx, d.doctorID, patientID)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Warn().Err(err).Int64("doctor_id", d.doctorID).Msg("load history")
	} else {
		d.history = items
		d.historyPatient = patientID
	}
	return append([]domain.AppointmentHistory(nil), d.history...), err
}

// AddNote attaches a consultation note and reloads the history with the
// current patient filter.
func (d *DoctorDesk) AddNote(ctx context.Context, appointmentID int64, note domain.ConsultationNote) (*domain.AddNoteResult, error) {
	if err := validation.Struct(note); err != nil {
		return nil, err
	}
	res, err := d.gw.AddNote(ctx, d.doctorID, appointmentID, note)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	patient := d.historyPatient
	d.mu.Unlock()
	if _, err := d.LoadHistory(ctx, patient); err != nil {
		return res, err
	}
	return res, nil
}

// LoadWaitlist fetches the waitlist for date, defaulting to today.
func (d *DoctorDesk) LoadWaitlist(ctx context.Context, date string) ([]domain.WaitlistEntry, string, error) {
	if date == "" {
		date = d.now().Format(time.DateOnly)
	} else if err := validation.Var("date", date, "datetime=2006-01-02"); err != nil {
		return nil, date, err
	}

	items, err := d.gw.Waitlist(ctx, d.doctorID, date)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Warn().Err(err).Str("date", date).Msg("load waitlist")
		return append([]domain.WaitlistEntry(nil), d.waitlist...), date, err
	}
	d.waitlist = items
	d.waitlistDate = date
	return append([]domain.WaitlistEntry(nil), items...), date, nil
}

// Stats reloads the queue and summarises it.
func (d *DoctorDesk) Stats(ctx context.Context) (DeskStats, error) {
	items, err := d.LoadUpcoming(ctx)
	if err != nil {
		return DeskStats{NextPatient: noNextPatient}, err
	}
	return summarise(items, d.now()), nil
}

func summarise(items []domain.UpcomingAppointment, now time.Time) DeskStats {
	stats := DeskStats{NextPatient: noNextPatient}
	today := now.Format(time.DateOnly)
	patients := make(map[string]struct{}, len(items))
	for _, a := range items {
		if strings.HasPrefix(a.AppointmentDateTime, today) {
			stats.TodayAppointments++
		}
		patients[a.PatientName] = struct{}{}
	}
	stats.TotalPatients = len(patients)
	if len(items) > 0 {
		stats.NextPatient = items[0].PatientName
	}
	return stats
}

func (d *DoctorDesk) UpdateProfile(ctx context.Context, profile domain.DoctorProfileUpdate) (*domain.MessageResponse, error) {
	if err := validation.Struct(profile); err != nil {
		return nil, err
	}
	return d.gw.UpdateProfile(ctx, d.doctorID, profile)
}

// SetAvailability replaces the weekly template. "HH:mm" times are widened
// to "HH:mm:ss" before sending.
func (d *DoctorDesk) SetAvailability(ctx context.Context, week domain.WeeklyAvailability) (*domain.SetAvailabilityResult, error) {
	if err := validation.Struct(week); err != nil {
		return nil, err
	}
	out := domain.WeeklyAvailability{
		SlotDurationInMinutes: week.SlotDurationInMinutes,
		Availability:          make([]domain.DailyAvailability, len(week.Availability)),
	}
	for i, day := range week.Availability {
		out.Availability[i] = domain.DailyAvailability{
			DayOfWeek: day.DayOfWeek,
			StartTime: withSeconds(day.StartTime),
			EndTime:   withSeconds(day.EndTime),
		}
	}
	return d.gw.SetAvailability(ctx, d.doctorID, out)
}

func withSeconds(t string) string {
	if len(t) == len("15:04") {
		return t + ":00"
	}
	return t
}
