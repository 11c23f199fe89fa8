package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
)

// DoctorHandler serves the doctor's desk. The doctor id always comes from
// the caller's identity.
type DoctorHandler struct{}

func NewDoctorHandler() *DoctorHandler {
	return &DoctorHandler{}
}

type waitlistResponse struct {
	Date  string                 `json:"date"`
	Items []domain.WaitlistEntry `json:"items"`
}

type actionResponse struct {
	Action   *domain.AppointmentAction    `json:"action"`
	Upcoming []domain.UpcomingAppointment `json:"upcoming"`
}

type noteResponse struct {
	Note    *domain.AddNoteResult       `json:"note"`
	History []domain.AppointmentHistory `json:"history"`
}

func ctxDesk(c echo.Context) (*service.DoctorDesk, error) {
	ws, id, err := ctxIdentity(c)
	if err != nil {
		return nil, err
	}
	return ws.Desk(id.ID), nil
}

// Upcoming lists the doctor's queue.
//
// @Summary      Upcoming appointments
// @Tags         doctor
// @Produce      json
// @Success      200  {array}  domain.UpcomingAppointment
// @Router       /doctor/upcoming [get]
func (h *DoctorHandler) Upcoming(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	items, err := desk.LoadUpcoming(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Confirm accepts a queued appointment.
//
// @Summary      Confirm appointment
// @Tags         doctor
// @Produce      json
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  actionResponse
// @Router       /doctor/upcoming/{id}/confirm [put]
func (h *DoctorHandler) Confirm(c echo.Context) error {
	return h.act(c, (*service.DoctorDesk).Confirm)
}

// Decline rejects a queued appointment.
//
// @Summary      Decline appointment
// @Tags         doctor
// @Produce      json
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  actionResponse
// @Router       /doctor/upcoming/{id}/decline [put]
func (h *DoctorHandler) Decline(c echo.Context) error {
	return h.act(c, (*service.DoctorDesk).Decline)
}

// Complete marks a queued appointment as done.
//
// @Summary      Complete appointment
// @Tags         doctor
// @Produce      json
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  actionResponse
// @Router       /doctor/upcoming/{id}/complete [put]
func (h *DoctorHandler) Complete(c echo.Context) error {
	return h.act(c, (*service.DoctorDesk).Complete)
}

type deskAction func(*service.DoctorDesk, context.Context, int64) (*domain.AppointmentAction, error)

func (h *DoctorHandler) act(c echo.Context, fn deskAction) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	res, err := fn(desk, c.Request().Context(), id)
	if res == nil {
		return err
	}
	return c.JSON(http.StatusOK, actionResponse{Action: res, Upcoming: desk.Upcoming()})
}

// Dashboard summarises the queue.
//
// @Summary      Doctor dashboard
// @Tags         doctor
// @Produce      json
// @Success      200  {object}  service.DeskStats
// @Router       /doctor-dashboard [get]
func (h *DoctorHandler) Dashboard(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	stats, err := desk.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// History lists past appointments, optionally for one patient.
//
// @Summary      Appointment history
// @Tags         doctor
// @Produce      json
// @Param        patientId  query    int  false  "Patient id"
// @Success      200        {array}  domain.AppointmentHistory
// @Router       /doctor/history [get]
func (h *DoctorHandler) History(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	var patientID *int64
	if raw := c.QueryParam("patientId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
		}
		patientID = &v
	}
	items, err := desk.LoadHistory(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AddNote attaches a consultation note to an appointment.
//
// @Summary      Add consultation note
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Appointment id"
// @Param        body  body      domain.ConsultationNote  true  "Note"
// @Success      201   {object}  noteResponse
// @Failure      422   {object}  map[string]string
// @Router       /doctor/history/{id}/notes [post]
func (h *DoctorHandler) AddNote(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	id, err := bindID(c)
	if err != nil {
		return err
	}
	var note domain.ConsultationNote
	if err := (&echo.DefaultBinder{}).BindBody(c, &note); err != nil {
		return badPayload()
	}
	res, err := desk.AddNote(c.Request().Context(), id, note)
	if res == nil {
		return err
	}
	return c.JSON(http.StatusCreated, noteResponse{Note: res, History: desk.History()})
}

// Waitlist shows who is waiting for a date, today by default.
//
// @Summary      Doctor waitlist
// @Tags         doctor
// @Produce      json
// @Param        date  query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  waitlistResponse
// @Failure      422   {object}  map[string]string
// @Router       /doctor/waitlist [get]
func (h *DoctorHandler) Waitlist(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	items, date, err := desk.LoadWaitlist(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, waitlistResponse{Date: date, Items: items})
}

// UpdateProfile changes the doctor's specialization, location and rating.
//
// @Summary      Update doctor profile
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Param        body  body      domain.DoctorProfileUpdate  true  "Profile fields"
// @Success      200   {object}  domain.MessageResponse
// @Failure      422   {object}  map[string]string
// @Router       /doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	desk, err := ctxDesk(c)
	if err != nil {
		return err
	}
	var req domain.DoctorProfileUpdate
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	res, err := desk.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
