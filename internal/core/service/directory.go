package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// DoctorDetails is the admin's view of one doctor.
type DoctorDetails struct {
	DoctorID      int64                       `json:"doctorId"`
	Schedule      []domain.DoctorAvailability `json:"schedule"`
	Feedback      []domain.Feedback           `json:"feedback"`
	AverageRating float64                     `json:"averageRating"`
}

// UserDirectory backs the admin screens. Block, unblock and delete always
// reload the full user list afterwards.
type UserDirectory struct {
	gw  ports.AdminGateway
	log zerolog.Logger

	mu      sync.Mutex
	entries []domain.DirectoryEntry
	doctors []domain.DirectoryEntry
}

func NewUserDirectory(gw ports.AdminGateway, log zerolog.Logger) *UserDirectory {
	return &UserDirectory{gw: gw, log: log}
}

// Load fetches every user and derives the directory rows. On failure the
// previous rows are kept.
func (d *UserDirectory) Load(ctx context.Context) ([]domain.DirectoryEntry, error) {
	users, err := d.gw.Users(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("load users")
		return d.Entries(), err
	}

	entries := make([]domain.DirectoryEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, domain.NewDirectoryEntry(u))
	}

	d.mu.Lock()
	d.entries = entries
	d.mu.Unlock()
	return d.Entries(), nil
}

func (d *UserDirectory) Entries() []domain.DirectoryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DirectoryEntry(nil), d.entries...)
}

// Filter matches search case-insensitively against first name, last name
// and email. An empty role matches every role.
func (d *UserDirectory) Filter(search string, role domain.Role) []domain.DirectoryEntry {
	return FilterEntries(d.Entries(), search, role)
}

func FilterEntries(entries []domain.DirectoryEntry, search string, role domain.Role) []domain.DirectoryEntry {
	term := strings.ToLower(search)
	out := make([]domain.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		matches := strings.Contains(strings.ToLower(e.FirstName), term) ||
			strings.Contains(strings.ToLower(e.LastName), term) ||
			strings.Contains(strings.ToLower(e.Email), term)
		if matches && (role == "" || e.Role == role) {
			out = append(out, e)
		}
	}
	return out
}

func (d *UserDirectory) Block(ctx context.Context, userID int64) ([]domain.DirectoryEntry, error) {
	return d.mutate(ctx, "block", userID, d.gw.BlockUser)
}

func (d *UserDirectory) Unblock(ctx context.Context, userID int64) ([]domain.DirectoryEntry, error) {
	return d.mutate(ctx, "unblock", userID, d.gw.UnblockUser)
}

func (d *UserDirectory) Delete(ctx context.Context, userID int64) ([]domain.DirectoryEntry, error) {
	return d.mutate(ctx, "delete", userID, d.gw.DeleteUser)
}

func (d *UserDirectory) mutate(ctx context.Context, action string, userID int64, fn func(context.Context, int64) error) ([]domain.DirectoryEntry, error) {
	if err := validation.Var("userId", userID, "gt=0"); err != nil {
		return d.Entries(), err
	}
	if err := fn(ctx, userID); err != nil {
		return d.Entries(), err
	}
	d.log.Info().Str("action", action).Int64("user_id", userID).Msg("user updated")
	return d.Load(ctx)
}

// Doctors loads the doctors tab. Every row carries ROLE_DOCTOR.
func (d *UserDirectory) Doctors(ctx context.Context) ([]domain.DirectoryEntry, error) {
	users, err := d.gw.Doctors(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Warn().Err(err).Msg("load doctors")
		return append([]domain.DirectoryEntry(nil), d.doctors...), err
	}
	rows := make([]domain.DirectoryEntry, 0, len(users))
	for _, u := range users {
		row := domain.NewDirectoryEntry(u)
		row.Role = domain.RoleDoctor
		rows = append(rows, row)
	}
	d.doctors = rows
	return append([]domain.DirectoryEntry(nil), rows...), nil
}

// DoctorDetails loads a doctor's schedule and feedback.
func (d *UserDirectory) DoctorDetails(ctx context.Context, doctorID int64) (DoctorDetails, error) {
	schedule, err := d.gw.DoctorSchedule(ctx, doctorID)
	if err != nil {
		return DoctorDetails{}, err
	}
	feedback, err := d.gw.DoctorFeedback(ctx, doctorID)
	if err != nil {
		return DoctorDetails{}, err
	}
	return DoctorDetails{
		DoctorID:      doctorID,
		Schedule:      schedule,
		Feedback:      feedback,
		AverageRating: domain.AverageRating(feedback),
	}, nil
}

func (d *UserDirectory) SystemLogs(ctx context.Context) ([]domain.SystemLog, error) {
	return d.gw.SystemLogs(ctx)
}

func (d *UserDirectory) Analytics(ctx context.Context) (*domain.DashboardAnalytics, error) {
	return d.gw.Analytics(ctx)
}

// Announce broadcasts a message to all users. Subject and message are both
// required.
func (d *UserDirectory) Announce(ctx context.Context, a domain.Announcement) error {
	if err := validation.Struct(a); err != nil {
		return err
	}
	if err := d.gw.SendAnnouncement(ctx, a); err != nil {
		return err
	}
	d.log.Info().Str("subject", a.Subject).Msg("announcement sent")
	return nil
}
