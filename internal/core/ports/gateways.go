package ports

import (
	"context"

	"github.com/carepoint/appointment-portal/internal/core/domain"
)

// AuthGateway covers the unauthenticated /auth endpoints.
type AuthGateway interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.MessageResponse, error)
	ForgotPassword(ctx context.Context, email string) (*domain.MessageResponse, error)
	ResetPassword(ctx context.Context, reset domain.PasswordReset) (*domain.MessageResponse, error)
}

// AppointmentGateway covers the patient-side appointment endpoints.
type AppointmentGateway interface {
	MyAppointments(ctx context.Context) ([]domain.Appointment, error)
	Book(ctx context.Context, req domain.BookingRequest) (*domain.BookingConfirmation, error)
	Cancel(ctx context.Context, appointmentID int64) (*domain.MessageResponse, error)
	Reschedule(ctx context.Context, appointmentID int64, req domain.RescheduleRequest) (*domain.Appointment, error)
}

// DoctorGateway covers /doctors: search, waitlist and the doctor's own desk.
type DoctorGateway interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.DoctorSearchResult, error)
	JoinWaitlist(ctx context.Context, doctorID int64, preferredDate string) (*domain.WaitlistJoinResult, error)
	Waitlist(ctx context.Context, doctorID int64, date string) ([]domain.WaitlistEntry, error)
	SetAvailability(ctx context.Context, doctorID int64, week domain.WeeklyAvailability) (*domain.SetAvailabilityResult, error)
	UpdateProfile(ctx context.Context, doctorID int64, profile domain.DoctorProfileUpdate) (*domain.MessageResponse, error)
	Upcoming(ctx context.Context, doctorID int64) ([]domain.UpcomingAppointment, error)
	Confirm(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error)
	Decline(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error)
	Complete(ctx context.Context, doctorID, appointmentID int64) (*domain.AppointmentAction, error)
	History(ctx context.Context, doctorID int64, patientID *int64) ([]domain.AppointmentHistory, error)
	AddNote(ctx context.Context, doctorID, appointmentID int64, note domain.ConsultationNote) (*domain.AddNoteResult, error)
}

// AdminGateway covers /admin.
type AdminGateway interface {
	Users(ctx context.Context) ([]domain.AdminUser, error)
	CreateUser(ctx context.Context, form domain.UserForm) error
	UpdateUser(ctx context.Context, userID int64, form domain.UserForm) error
	DeleteUser(ctx context.Context, userID int64) error
	BlockUser(ctx context.Context, userID int64) error
	UnblockUser(ctx context.Context, userID int64) error
	Doctors(ctx context.Context) ([]domain.AdminUser, error)
	AddDoctor(ctx context.Context, form domain.UserForm) error
	AddAdmin(ctx context.Context, form domain.UserForm) error
	DoctorSchedule(ctx context.Context, doctorID int64) ([]domain.DoctorAvailability, error)
	DoctorFeedback(ctx context.Context, doctorID int64) ([]domain.Feedback, error)
	SystemLogs(ctx context.Context) ([]domain.SystemLog, error)
	Analytics(ctx context.Context) (*domain.DashboardAnalytics, error)
	SendAnnouncement(ctx context.Context, a domain.Announcement) error
}

// UserGateway covers the caller's own /users/profile.
type UserGateway interface {
	Profile(ctx context.Context) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error)
}
