package gateway

import (
	"context"
	"net/http"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
)

// AdminGateway covers /admin. User records are sanitized before they
// leave the gateway.
type AdminGateway struct {
	c *Client
}

var _ ports.AdminGateway = (*AdminGateway)(nil)

func NewAdminGateway(c *Client) *AdminGateway {
	return &AdminGateway{c: c}
}

func (g *AdminGateway) Users(ctx context.Context) ([]domain.AdminUser, error) {
	return g.users(ctx, "users", "/admin/users")
}

func (g *AdminGateway) Doctors(ctx context.Context) ([]domain.AdminUser, error) {
	return g.users(ctx, "doctors", "/admin/doctors")
}

func (g *AdminGateway) users(ctx context.Context, op, p string) ([]domain.AdminUser, error) {
	var raw []wireUser
	if err := g.c.do(ctx, call{op: op, method: http.MethodGet, path: p}, &raw); err != nil {
		return nil, err
	}
	return toAdminUsers(raw), nil
}

func (g *AdminGateway) CreateUser(ctx context.Context, form domain.UserForm) error {
	return g.c.do(ctx, call{op: "create_user", method: http.MethodPost, path: "/admin/users", body: form}, nil)
}

func (g *AdminGateway) UpdateUser(ctx context.Context, userID int64, form domain.UserForm) error {
	return g.c.do(ctx, call{op: "update_user", method: http.MethodPut, path: path("/admin/users/%d", userID), body: form}, nil)
}

func (g *AdminGateway) DeleteUser(ctx context.Context, userID int64) error {
	return g.c.do(ctx, call{op: "delete_user", method: http.MethodDelete, path: path("/admin/users/%d", userID)}, nil)
}

func (g *AdminGateway) BlockUser(ctx context.Context, userID int64) error {
	return g.c.do(ctx, call{op: "block_user", method: http.MethodPost, path: path("/admin/users/%d/block", userID), body: struct{}{}}, nil)
}

func (g *AdminGateway) UnblockUser(ctx context.Context, userID int64) error {
	return g.c.do(ctx, call{op: "unblock_user", method: http.MethodPost, path: path("/admin/users/%d/unblock", userID), body: struct{}{}}, nil)
}

func (g *AdminGateway) AddDoctor(ctx context.Context, form domain.UserForm) error {
	return g.c.do(ctx, call{op: "add_doctor", method: http.MethodPost, path: "/admin/add-doctor", body: form}, nil)
}

func (g *AdminGateway) AddAdmin(ctx context.Context, form domain.UserForm) error {
	return g.c.do(ctx, call{op: "add_admin", method: http.MethodPost, path: "/admin/add-admin", body: form}, nil)
}

func (g *AdminGateway) DoctorSchedule(ctx context.Context, doctorID int64) ([]domain.DoctorAvailability, error) {
	var raw []wireAvailability
	err := g.c.do(ctx, call{op: "doctor_schedule", method: http.MethodGet, path: path("/admin/doctors/%d/schedule", doctorID)}, &raw)
	if err != nil {
		return nil, err
	}
	return toAvailabilities(raw), nil
}

func (g *AdminGateway) DoctorFeedback(ctx context.Context, doctorID int64) ([]domain.Feedback, error) {
	var out feedbackBody
	err := g.c.do(ctx, call{op: "doctor_feedback", method: http.MethodGet, path: path("/admin/doctors/%d/feedback", doctorID)}, &out)
	if err != nil {
		return nil, err
	}
	return []domain.Feedback(out), nil
}

func (g *AdminGateway) SystemLogs(ctx context.Context) ([]domain.SystemLog, error) {
	var out []domain.SystemLog
	if err := g.c.do(ctx, call{op: "system_logs", method: http.MethodGet, path: "/admin/logs"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *AdminGateway) Analytics(ctx context.Context) (*domain.DashboardAnalytics, error) {
	var out domain.DashboardAnalytics
	if err := g.c.do(ctx, call{op: "analytics", method: http.MethodGet, path: "/admin/analytics"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AdminGateway) SendAnnouncement(ctx context.Context, a domain.Announcement) error {
	return g.c.do(ctx, call{op: "announcement", method: http.MethodPost, path: "/admin/announcements", body: a}, nil)
}
