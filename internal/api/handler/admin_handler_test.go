package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/memory"
)

type stubAdmin struct {
	ports.AdminGateway
	usersFn func(ctx context.Context) ([]domain.AdminUser, error)
	blocked []int64
}

func (s *stubAdmin) Users(ctx context.Context) ([]domain.AdminUser, error) {
	return s.usersFn(ctx)
}

func (s *stubAdmin) BlockUser(_ context.Context, userID int64) error {
	s.blocked = append(s.blocked, userID)
	return nil
}

// newPartsFixture builds workspaces whose views come from parts.
func newPartsFixture(parts func(session *service.Session) middleware.WorkspaceParts) *fixture {
	store := memory.New()
	reg := middleware.NewRegistry(store, func(id string, cs ports.ClientStorage) middleware.WorkspaceParts {
		return parts(service.NewSession(nil, cs))
	}, zerolog.Nop())
	return &fixture{store: store, registry: reg}
}

func adminChain() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.Auth(), middleware.RBAC(domain.RoleAdmin)}
}

func directoryUsers() []domain.AdminUser {
	return []domain.AdminUser{
		{ID: 1, Email: "root@x.com", FullName: "Ada Root", Roles: []string{"ROLE_ADMIN"}, Enabled: true},
		{ID: 2, Email: "ray@x.com", FullName: "Ray Heart", Roles: []string{"ROLE_DOCTOR"}, Enabled: true},
		{ID: 3, Email: "ann@x.com", FullName: "Ann Lee", Roles: []string{"ROLE_PATIENT"}, Enabled: false},
	}
}

func newAdminFixture(gw *stubAdmin) *fixture {
	return newPartsFixture(func(s *service.Session) middleware.WorkspaceParts {
		return middleware.WorkspaceParts{Session: s, Directory: service.NewUserDirectory(gw, zerolog.Nop())}
	})
}

func TestAdminHandler_Users_FiltersLoadedDirectory(t *testing.T) {
	f := newAdminFixture(&stubAdmin{usersFn: func(context.Context) ([]domain.AdminUser, error) {
		return directoryUsers(), nil
	}})
	f.login(t, 1, "ROLE_ADMIN")

	rec, err := f.call(http.MethodGet, "/admin/users?search=RAY&role=ROLE_DOCTOR", "", nil,
		NewAdminHandler().Users, adminChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp directoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected total 3, got %d", resp.Total)
	}
	if len(resp.Users) != 1 || resp.Users[0].ID != 2 || resp.Users[0].FirstName != "Ray" || resp.Users[0].Role != domain.RoleDoctor {
		t.Fatalf("unexpected filtered users %+v", resp.Users)
	}
}

func TestAdminHandler_BlockUser_ReloadsDirectory(t *testing.T) {
	loads := 0
	gw := &stubAdmin{usersFn: func(context.Context) ([]domain.AdminUser, error) {
		loads++
		return directoryUsers(), nil
	}}
	f := newAdminFixture(gw)
	f.login(t, 1, "ROLE_ADMIN")

	rec, err := f.call(http.MethodPost, "/admin/users/3/block", "", map[string]string{"id": "3"},
		NewAdminHandler().BlockUser, adminChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gw.blocked) != 1 || gw.blocked[0] != 3 {
		t.Fatalf("expected user 3 to be blocked, got %v", gw.blocked)
	}
	if loads != 1 {
		t.Fatalf("expected one directory reload, got %d", loads)
	}
}

func TestAdminHandler_Users_BackendErrorPropagates(t *testing.T) {
	f := newAdminFixture(&stubAdmin{usersFn: func(context.Context) ([]domain.AdminUser, error) {
		return nil, errors.New("backend down")
	}})
	f.login(t, 1, "ROLE_ADMIN")

	_, err := f.call(http.MethodGet, "/admin/users", "", nil, NewAdminHandler().Users, adminChain()...)
	if err == nil || err.Error() != "backend down" {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestAdminHandler_PatientIsRedirected(t *testing.T) {
	f := newAdminFixture(&stubAdmin{usersFn: func(context.Context) ([]domain.AdminUser, error) {
		t.Fatalf("directory must not load")
		return nil, nil
	}})
	f.login(t, 7, "ROLE_PATIENT")

	rec, err := f.call(http.MethodGet, "/admin/users", "", nil, NewAdminHandler().Users, adminChain()...)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected 303 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
