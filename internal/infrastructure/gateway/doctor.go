package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
)

type DoctorGateway struct {
	c *Client
}

var _ ports.DoctorGateway = (*DoctorGateway)(nil)

func NewDoctorGateway(c *Client) *DoctorGateway {
	return &DoctorGateway{c: c}
}

// Search sends only the criteria that are set.
func (g *DoctorGateway) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.DoctorSearchResult, error) {
	q := query{}.
		str("specialization", strings.TrimSpace(criteria.Specialization)).
		str("location", strings.TrimSpace(criteria.Location)).
		float("minRating", criteria.MinRating)

	var out []domain.DoctorSearchResult
	err := g.c.do(ctx, call{op: "search", method: http.MethodGet, path: "/doctors/search", query: q.values()}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *DoctorGateway) JoinWaitlist(ctx context.Context, doctorID int64, preferredDate string) (*domain.WaitlistJoinResult, error) {
	var out domain.WaitlistJoinResult
	err := g.c.do(ctx, call{
		op:     "join_waitlist",
		method: http.MethodPost,
		path:   path("/doctors/%d/waitlist/join", doctorID),
		query:  query{}.str("preferredDate", preferredDate).values(),
		body:   struct{}{},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *DoctorGateway) Waitlist(ctx context.Context, doctorID int64, date string) ([]domain.WaitlistEntry, error) {
	var out []domain.WaitlistEntry
	err := g.c.do(ctx, call{
		op:     "waitlist",
		method: http.MethodGet,
		path:   path("/doctors/%d/waitlist", doctorID),
		query:  query{}.str("date", date).values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *DoctorGateway) SetAvailability(ctx context.Context, doctorID int64, week domain.WeeklyAvailability) (*domain.SetAvailabilityResult, error) {
	var out domain.SetAvailabilityResult
	err := g.c.do(ctx, call{
		op:     "set_availability",
		method: http.MethodPut,
		path:   path("/doctors/%d/availability", doctorID),
		body:   week,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile accepts a plain-text or JSON reply; plain text becomes the message.
func (g *DoctorGateway) UpdateProfile(ctx context.Context, doctorID int64, profile domain.DoctorProfileUpdate) (*domain.MessageResponse, error) {
	var text string
	err := g.c.do(ctx, call{
		op:     "update_doctor_profile",
		method: http.MethodPut,
		path:   path("/doctors/%d/profile", doctorID),
		body:   profile,
	}, &text)
	if err != nil {
		return nil, err
	}
	return parseMessage(text), nil
}

func (g *DoctorGateway) Upcoming(ctx context.Context, doctorID int64) ([]domain.UpcomingAppointment, error) {
	var out []domain.UpcomingAppointment
	err := g.c.do(ctx, call{op: "upcoming", method: http.MethodGet, path: path("/doctors/%d/appointments/upcoming", doctorID)}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *DoctorGateway) Confirm(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error) {
	return g.act(ctx, "confirm", doctorID, appointmentID)
}

func (g *DoctorGateway) Decline(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error) {
	return g.act(ctx, "decline", doctorID, appointmentID)
}

func (g *DoctorGateway) Complete(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error) {
	return g.act(ctx, "complete", doctorID, appointmentID)
}

func (g *DoctorGateway) act(ctx context.Context, action string, doctorID, appointmentID int64) (*domain.AppointmentAction, error) {
	var out domain.AppointmentAction
	err := g.c.do(ctx, call{
		op:     action,
		method: http.MethodPut,
		path:   path("/doctors/%d/appointments/%d/%s", doctorID, appointmentID, action),
		body:   struct{}{},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// History filters by patientID only when it is non-nil.
func (g *DoctorGateway) History(ctx context.Context, doctorID int64, patientID *int64) ([]domain.AppointmentHistory, error) {
	var out []domain.AppointmentHistory
	err := g.c.do(ctx, call{
		op:     "history",
		method: http.MethodGet,
		path:   path("/doctors/%d/appointments/history", doctorID),
		query:  query{}.id("patientId", patientID).values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *DoctorGateway) AddNote(ctx context.Context, doctorID, appointmentID int64, note domain.ConsultationNote) (*domain.AddNoteResult, error) {
	var out domain.AddNoteResult
	err := g.c.do(ctx, call{
		op:     "add_note",
		method: http.MethodPost,
		path:   path("/doctors/%d/appointments/%d/notes", doctorID, appointmentID),
		body:   note,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
