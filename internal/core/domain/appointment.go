package domain

// AppointmentStatus is server-owned; values outside the constants are kept as-is.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment as listed by /appointments/my-appointments.
// Date-times are the backend's zone-less local date-times.
type Appointment struct {
	ID                  int64             `json:"id"`
	PatientID           int64             `json:"patientId"`
	PatientName         string            `json:"patientName"`
	DoctorID            int64             `json:"doctorId"`
	DoctorName          string            `json:"doctorName"`
	AppointmentDateTime string            `json:"appointmentDateTime"`
	Status              AppointmentStatus `json:"status"`
	CreatedAt           string            `json:"createdAt"`
}

type BookingRequest struct {
	DoctorID            int64  `json:"doctorId"`
	AppointmentDateTime string `json:"appointmentDateTime"`
}

type BookingConfirmation struct {
	Success            bool         `json:"success"`
	Message            string       `json:"message"`
	AppointmentDetails *Appointment `json:"appointmentDetails,omitempty"`
	WaitlistAvailable  *bool        `json:"waitlistAvailable,omitempty"`
}

type RescheduleRequest struct {
	NewAppointmentDateTime string `json:"newAppointmentDateTime"`
}

// MessageResponse is the backend's generic {success, message} envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type WaitlistEntry struct {
	WaitlistID    int64  `json:"waitlistId"`
	PatientID     int64  `json:"patientId"`
	PatientName   string `json:"patientName"`
	PreferredDate string `json:"preferredDate"`
	RequestedAt   string `json:"requestedAt"`
}

type WaitlistJoinResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *WaitlistEntry `json:"data,omitempty"`
}

// UpcomingAppointment is one row of a doctor's queue.
type UpcomingAppointment struct {
	AppointmentID       int64  `json:"appointmentId"`
	PatientName         string `json:"patientName"`
	AppointmentDateTime string `json:"appointmentDateTime"`
	Status              string `json:"status"`
}

type AppointmentAction struct {
	AppointmentID int64  `json:"appointmentId"`
	DoctorID      int64  `json:"doctorId"`
	DoctorName    string `json:"doctorName"`
	PatientID     int64  `json:"patientId"`
	PatientName   string `json:"patientName"`
	NewStatus     string `json:"newStatus"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
}

type ConsultationNote struct {
	Diagnosis        string `json:"diagnosis"                  validate:"required"`
	Prescription     string `json:"prescription"               validate:"required"`
	TreatmentDetails string `json:"treatmentDetails,omitempty"`
	Remarks          string `json:"remarks,omitempty"`
}

type AppointmentHistory struct {
	AppointmentID       int64             `json:"appointmentId"`
	DoctorID            int64             `json:"doctorId"`
	DoctorName          string            `json:"doctorName"`
	PatientID           int64             `json:"patientId"`
	PatientName         string            `json:"patientName"`
	AppointmentDateTime string            `json:"appointmentDateTime"`
	ConsultationNote    *ConsultationNote `json:"consultationNote"`
}

type AddNoteResult struct {
	NoteID        int64            `json:"noteId"`
	AppointmentID int64            `json:"appointmentId"`
	Message       string           `json:"message"`
	NoteDetails   ConsultationNote `json:"noteDetails"`
}
