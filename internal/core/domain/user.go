package domain

import (
	"math"
	"strings"
)

type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	FullName    string `json:"fullName"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type PasswordReset struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// AuthResponse is the /authenticate payload. User, when present, carries
// the fields the login screen persists as the identity snapshot.
type AuthResponse struct {
	AccessToken string    `json:"accessToken,omitempty"`
	Message     string    `json:"message,omitempty"`
	Verified    *bool     `json:"verified,omitempty"`
	User        *Identity `json:"user,omitempty"`
}

// DoctorRef is the allowlisted projection of a doctor embedded in an
// availability. It never carries the doctor's own availabilities.
type DoctorRef struct {
	ID                    int64    `json:"id"`
	Email                 string   `json:"email"`
	FullName              string   `json:"fullName"`
	PhoneNumber           string   `json:"phoneNumber,omitempty"`
	Address               string   `json:"address,omitempty"`
	Roles                 []string `json:"roles"`
	Enabled               bool     `json:"enabled"`
	AccountNonLocked      bool     `json:"accountNonLocked"`
	AccountNonExpired     bool     `json:"accountNonExpired"`
	CredentialsNonExpired bool     `json:"credentialsNonExpired"`
	CreatedAt             string   `json:"createdAt,omitempty"`
	UpdatedAt             string   `json:"updatedAt,omitempty"`
	Specialization        string   `json:"specialization,omitempty"`
	Location              string   `json:"location,omitempty"`
	Rating                *float64 `json:"rating,omitempty"`
	SlotDurationInMinutes *int     `json:"slotDurationInMinutes,omitempty"`
}

// DoctorAvailability is one recurring weekly window of a doctor.
type DoctorAvailability struct {
	ID        int64      `json:"id"`
	DayOfWeek DayOfWeek  `json:"dayOfWeek"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Doctor    *DoctorRef `json:"doctor,omitempty"`
}

// AdminUser is the sanitized form of a backend user record.
type AdminUser struct {
	ID                    int64                `json:"id"`
	Email                 string               `json:"email"`
	FullName              string               `json:"fullName"`
	PhoneNumber           string               `json:"phoneNumber,omitempty"`
	Address               string               `json:"address,omitempty"`
	Roles                 []string             `json:"roles"`
	Enabled               bool                 `json:"enabled"`
	AccountNonLocked      bool                 `json:"accountNonLocked"`
	AccountNonExpired     bool                 `json:"accountNonExpired"`
	CredentialsNonExpired bool                 `json:"credentialsNonExpired"`
	CreatedAt             string               `json:"createdAt,omitempty"`
	UpdatedAt             string               `json:"updatedAt,omitempty"`
	Specialization        string               `json:"specialization,omitempty"`
	Location              string               `json:"location,omitempty"`
	Rating                *float64             `json:"rating,omitempty"`
	SlotDurationInMinutes *int                 `json:"slotDurationInMinutes,omitempty"`
	Availabilities        []DoctorAvailability `json:"availabilities,omitempty"`
}

// DirectoryEntry is one row of the admin user directory.
type DirectoryEntry struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Enabled   bool   `json:"enabled"`
}

// NewDirectoryEntry splits the full name on its first space and resolves
// the role from the user's role list.
func NewDirectoryEntry(u AdminUser) DirectoryEntry {
	first, last, _ := strings.Cut(u.FullName, " ")
	return DirectoryEntry{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		FirstName: first,
		LastName:  last,
		Role:      ResolveRole(u.Roles),
		Enabled:   u.Enabled,
	}
}

// UserForm is the body of the admin create, update, add-doctor and
// add-admin calls. An empty password on update leaves it unchanged.
type UserForm struct {
	Email       string `json:"email"    validate:"required,email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName" validate:"required"`
	Role        Role   `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type Feedback struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// AverageRating is the mean rating rounded to one decimal; 0 when empty.
func AverageRating(items []Feedback) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum int
	for _, f := range items {
		sum += f.Rating
	}
	return math.Round(float64(sum)/float64(len(items))*10) / 10
}

type SystemLog struct {
	ID        int64  `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	IPAddress string `json:"ipAddress,omitempty"`
	Timestamp string `json:"timestamp"`
}

type DashboardAnalytics struct {
	TotalUsers            int64 `json:"totalUsers"`
	TotalDoctors          int64 `json:"totalDoctors"`
	TotalPatients         int64 `json:"totalPatients"`
	TotalAppointments     int64 `json:"totalAppointments"`
	ScheduledAppointments int64 `json:"scheduledAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	CanceledAppointments  int64 `json:"canceledAppointments"`
}

type Announcement struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// UserProfile is the caller's own record from /users/profile.
type UserProfile struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Address     string   `json:"address,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Enabled     bool     `json:"enabled"`
}

type ProfileUpdate struct {
	FullName    string `json:"fullName"    validate:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}
