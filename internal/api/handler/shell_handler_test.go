package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

type stubUsers struct {
	profile *domain.UserProfile
	updates []domain.ProfileUpdate
}

func (s *stubUsers) Profile(context.Context) (*domain.UserProfile, error) {
	return s.profile, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, u domain.ProfileUpdate) (*domain.UserProfile, error) {
	s.updates = append(s.updates, u)
	p := *s.profile
	p.FullName = u.FullName
	p.PhoneNumber = u.PhoneNumber
	return &p, nil
}

func newShellFixture(users *stubUsers) *fixture {
	return newPartsFixture(func(s *service.Session) middleware.WorkspaceParts {
		return middleware.WorkspaceParts{Session: s, Profile: service.NewProfile(users)}
	})
}

func TestShellHandler_Shell_Anonymous(t *testing.T) {
	f := newShellFixture(&stubUsers{})

	rec, err := f.call(http.MethodGet, "/shell", "", nil, NewShellHandler().Shell)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var view service.ShellView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.IsLoggedIn || view.IsAdmin || view.IsDoctor || view.Identity != nil {
		t.Fatalf("expected anonymous view, got %+v", view)
	}
}

func TestShellHandler_Dashboard_DoctorLinks(t *testing.T) {
	f := newShellFixture(&stubUsers{})
	f.login(t, 5, "ROLE_DOCTOR")

	rec, err := f.call(http.MethodGet, "/dashboard", "", nil, NewShellHandler().Dashboard, middleware.Auth())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		IsLoggedIn bool     `json:"isLoggedIn"`
		IsDoctor   bool     `json:"isDoctor"`
		IsAdmin    bool     `json:"isAdmin"`
		Links      []string `json:"links"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.IsLoggedIn || !resp.IsDoctor || resp.IsAdmin {
		t.Fatalf("unexpected flags %+v", resp)
	}
	if len(resp.Links) < 2 || resp.Links[0] != "/profile" || resp.Links[1] != "/doctor-dashboard" {
		t.Fatalf("unexpected links %v", resp.Links)
	}
}

func TestShellHandler_UpdateProfile(t *testing.T) {
	users := &stubUsers{profile: &domain.UserProfile{ID: 7, Email: "ann@x.com", FullName: "Ann Lee"}}
	f := newShellFixture(users)
	f.login(t, 7, "ROLE_PATIENT")

	rec, err := f.call(http.MethodPut, "/profile", `{"fullName":"Ann Park","phoneNumber":"555-0101"}`, nil,
		NewShellHandler().UpdateProfile, middleware.Auth())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var p domain.UserProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ID != 7 || p.FullName != "Ann Park" || p.PhoneNumber != "555-0101" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestShellHandler_UpdateProfile_RequiresName(t *testing.T) {
	users := &stubUsers{profile: &domain.UserProfile{ID: 7}}
	f := newShellFixture(users)
	f.login(t, 7, "ROLE_PATIENT")

	_, err := f.call(http.MethodPut, "/profile", `{"phoneNumber":"555-0101"}`, nil,
		NewShellHandler().UpdateProfile, middleware.Auth())
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(users.updates) != 0 {
		t.Fatalf("backend must not be called")
	}
}
