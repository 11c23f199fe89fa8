package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

type stubAdminGateway struct {
	users     []domain.AdminUser
	doctors   []domain.AdminUser
	feedback  []domain.Feedback
	blockErr  error
	userCalls int
	blocked   []int64
	announced []domain.Announcement
}

func (g *stubAdminGateway) Users(context.Context) ([]domain.AdminUser, error) {
	g.userCalls++
	return g.users, nil
}

func (g *stubAdminGateway) CreateUser(context.Context, domain.UserForm) error        { return nil }
func (g *stubAdminGateway) UpdateUser(context.Context, int64, domain.UserForm) error { return nil }
func (g *stubAdminGateway) DeleteUser(context.Context, int64) error                  { return nil }

func (g *stubAdminGateway) BlockUser(_ context.Context, id int64) error {
	if g.blockErr != nil {
		return g.blockErr
	}
	g.blocked = append(g.blocked, id)
	return nil
}

func (g *stubAdminGateway) UnblockUser(context.Context, int64) error { return nil }

func (g *stubAdminGateway) Doctors(context.Context) ([]domain.AdminUser, error) {
	return g.doctors, nil
}

func (g *stubAdminGateway) AddDoctor(context.Context, domain.UserForm) error { return nil }
func (g *stubAdminGateway) AddAdmin(context.Context, domain.UserForm) error  { return nil }

func (g *stubAdminGateway) DoctorSchedule(context.Context, int64) ([]domain.DoctorAvailability, error) {
	return []domain.DoctorAvailability{{ID: 1, DayOfWeek: domain.Monday}}, nil
}

func (g *stubAdminGateway) DoctorFeedback(context.Context, int64) ([]domain.Feedback, error) {
	return g.feedback, nil
}

func (g *stubAdminGateway) SystemLogs(context.Context) ([]domain.SystemLog, error) { return nil, nil }

func (g *stubAdminGateway) Analytics(context.Context) (*domain.DashboardAnalytics, error) {
	return &domain.DashboardAnalytics{}, nil
}

func (g *stubAdminGateway) SendAnnouncement(_ context.Context, a domain.Announcement) error {
	g.announced = append(g.announced, a)
	return nil
}

var directoryUsers = []domain.AdminUser{
	{ID: 1, Email: "root@x.com", FullName: "Grace Brewster Hopper", Roles: []string{"ROLE_PATIENT", "ROLE_ADMIN"}, Enabled: true},
	{ID: 2, Email: "house@x.com", FullName: "Gregory House", Roles: []string{"ROLE_DOCTOR"}, Enabled: true},
	{ID: 3, Email: "pat@x.com", FullName: "Pat", Roles: []string{}, Enabled: false},
}

func TestUserDirectory_LoadDerivesRows(t *testing.T) {
	gw := &stubAdminGateway{users: directoryUsers}
	rows, err := NewUserDirectory(gw, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if rows[0].FirstName != "Grace" || rows[0].LastName != "Brewster Hopper" || rows[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Role != domain.RoleDoctor {
		t.Fatalf("expected doctor, got %s", rows[1].Role)
	}
	if rows[2].FirstName != "Pat" || rows[2].LastName != "" || rows[2].Role != domain.RolePatient || rows[2].Enabled {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

func TestUserDirectory_Filter(t *testing.T) {
	dir := NewUserDirectory(&stubAdminGateway{users: directoryUsers}, zerolog.Nop())
	_, _ = dir.Load(context.Background())

	if got := dir.Filter("", ""); len(got) != 3 {
		t.Fatalf("expected all rows, got %d", len(got))
	}
	if got := dir.Filter("HOPPER", ""); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected last name match, got %+v", got)
	}
	if got := dir.Filter("@x.com", domain.RoleDoctor); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected role filter, got %+v", got)
	}
	if got := dir.Filter("house", domain.RoleAdmin); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestUserDirectory_BlockReloads(t *testing.T) {
	gw := &stubAdminGateway{users: directoryUsers}
	dir := NewUserDirectory(gw, zerolog.Nop())

	if _, err := dir.Block(context.Background(), 2); err != nil {
		t.Fatalf("Block returned error: %v", err)
	}
	if len(gw.blocked) != 1 || gw.blocked[0] != 2 {
		t.Fatalf("unexpected block calls: %v", gw.blocked)
	}
	if gw.userCalls != 1 {
		t.Fatalf("expected reload, got %d user calls", gw.userCalls)
	}

	gw.blockErr = errors.New("forbidden")
	if _, err := dir.Block(context.Background(), 2); err == nil {
		t.Fatalf("expected error")
	}
	if gw.userCalls != 1 {
		t.Fatalf("expected no reload on failure, got %d", gw.userCalls)
	}

	if _, err := dir.Block(context.Background(), 0); err == nil {
		t.Fatalf("expected validation error for id 0")
	}
}

func TestUserDirectory_DoctorDetailsAverage(t *testing.T) {
	gw := &stubAdminGateway{feedback: []domain.Feedback{{Rating: 5}, {Rating: 4}, {Rating: 4}}}
	details, err := NewUserDirectory(gw, zerolog.Nop()).DoctorDetails(context.Background(), 2)
	if err != nil {
		t.Fatalf("DoctorDetails returned error: %v", err)
	}
	if details.AverageRating != 4.3 {
		t.Fatalf("expected 4.3, got %v", details.AverageRating)
	}
	if len(details.Schedule) != 1 {
		t.Fatalf("expected schedule, got %+v", details.Schedule)
	}
}

func TestUserDirectory_DoctorsTab(t *testing.T) {
	gw := &stubAdminGateway{doctors: []domain.AdminUser{{ID: 2, FullName: "Gregory House"}}}
	rows, err := NewUserDirectory(gw, zerolog.Nop()).Doctors(context.Background())
	if err != nil {
		t.Fatalf("Doctors returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Role != domain.RoleDoctor || rows[0].LastName != "House" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestUserDirectory_AnnounceRequiresBothFields(t *testing.T) {
	gw := &stubAdminGateway{}
	dir := NewUserDirectory(gw, zerolog.Nop())

	err := dir.Announce(context.Background(), domain.Announcement{Subject: "Closed"})
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := dir.Announce(context.Background(), domain.Announcement{Subject: "Closed", Message: "Monday"}); err != nil {
		t.Fatalf("Announce returned error: %v", err)
	}
	if len(gw.announced) != 1 {
		t.Fatalf("expected one announcement, got %d", len(gw.announced))
	}
}

func TestAverageRating_Empty(t *testing.T) {
	if got := domain.AverageRating(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
