package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// PatientHandler serves doctor search, booking and the patient's own
// appointment list.
type PatientHandler struct{}

func NewPatientHandler() *PatientHandler {
	return &PatientHandler{}
}

type bookingParams struct {
	DoctorID  int64  `param:"doctorId"`
	Date      string `param:"date"`
	StartTime string `param:"startTime"`
}

func (p bookingParams) input() service.BookingInput {
	return service.BookingInput{DoctorID: p.DoctorID, Date: p.Date, StartTime: p.StartTime}
}

type rescheduleRequest struct {
	NewAppointmentDateTime string `json:"newAppointmentDateTime"`
}

type appointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Message      string               `json:"message,omitempty"`
}

// SearchDoctors runs a doctor search with the optional criteria.
//
// @Summary      Search doctors
// @Tags         patient
// @Produce      json
// @Param        specialization  query     string  false  "Specialization"
// @Param        location        query     string  false  "Location"
// @Param        minRating       query     number  false  "Minimum rating (0-5)"
// @Success      200             {object}  service.SearchView
// @Failure      422             {object}  map[string]string
// @Router       /doctor-search [get]
func (h *PatientHandler) SearchDoctors(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var criteria domain.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return badPayload()
	}
	view, err := ws.Search.Search(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// OpenBooking starts a booking attempt for the slot in the path.
//
// @Summary      Open booking page
// @Tags         patient
// @Produce      json
// @Param        doctorId   path      int     true  "Doctor id"
// @Param        date       path      string  true  "YYYY-MM-DD"
// @Param        startTime  path      string  true  "HH:mm or HH:mm:ss"
// @Success      200        {object}  service.BookingView
// @Router       /book/{doctorId}/{date}/{startTime} [get]
func (h *PatientHandler) OpenBooking(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var p bookingParams
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return badPayload()
	}
	flow := ws.StartBooking(p.input())
	return c.JSON(http.StatusOK, flow.View())
}

// Book submits the booking. A taken slot is reported in the returned view
// as state "conflicted" with the waitlist offered.
//
// @Summary      Book appointment
// @Tags         patient
// @Produce      json
// @Param        doctorId   path      int     true  "Doctor id"
// @Param        date       path      string  true  "YYYY-MM-DD"
// @Param        startTime  path      string  true  "HH:mm or HH:mm:ss"
// @Success      200        {object}  service.BookingView
// @Failure      409        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /book/{doctorId}/{date}/{startTime} [post]
func (h *PatientHandler) Book(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var p bookingParams
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return badPayload()
	}
	view, err := ws.Booking().AttemptBook(c.Request().Context(), p.input())
	return flowResult(c, view, err)
}

// JoinWaitlist takes the waitlist offer of a conflicted booking.
//
// @Summary      Join waitlist
// @Tags         patient
// @Produce      json
// @Success      200  {object}  service.BookingView
// @Failure      409  {object}  map[string]string
// @Router       /book/waitlist [post]
func (h *PatientHandler) JoinWaitlist(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	view, err := ws.Booking().JoinWaitlist(c.Request().Context())
	return flowResult(c, view, err)
}

// flowResult renders a settled flow as its view. Refusals that leave the
// flow untouched go to the error handler instead.
func flowResult(c echo.Context, view service.BookingView, err error) error {
	var ve *validation.Error
	switch {
	case err == nil:
	case errors.As(err, &ve),
		errors.Is(err, domain.ErrBookingInFlight),
		errors.Is(err, domain.ErrBookingSettled),
		errors.Is(err, domain.ErrWaitlistNotOffered):
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// MyAppointments lists the caller's appointments.
//
// @Summary      My appointments
// @Tags         patient
// @Produce      json
// @Success      200  {object}  appointmentsResponse
// @Router       /my-appointments [get]
func (h *PatientHandler) MyAppointments(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := ws.Appointments.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: items})
}

// CancelAppointment cancels one appointment and returns the reloaded list.
//
// @Summary      Cancel appointment
// @Tags         patient
// @Produce      json
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  appointmentsResponse
// @Router       /my-appointments/{id}/cancel [put]
func (h *PatientHandler) CancelAppointment(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	items, err := ws.Appointments.Cancel(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: items, Message: "Appointment cancelled successfully."})
}

// RescheduleAppointment moves one appointment and returns the reloaded list.
//
// @Summary      Reschedule appointment
// @Tags         patient
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Appointment id"
// @Param        body  body      rescheduleRequest  true  "New date-time"
// @Success      200   {object}  appointmentsResponse
// @Failure      422   {object}  map[string]string
// @Router       /my-appointments/{id}/reschedule [put]
func (h *PatientHandler) RescheduleAppointment(c echo.Context) error {
	ws, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	var req rescheduleRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return badPayload()
	}
	items, err := ws.Appointments.Reschedule(c.Request().Context(), id, req.NewAppointmentDateTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: items, Message: "Appointment rescheduled successfully."})
}
