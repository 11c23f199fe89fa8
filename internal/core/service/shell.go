package service

import (
	"context"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// ShellView drives the navigation chrome.
type ShellView struct {
	IsLoggedIn bool             `json:"isLoggedIn"`
	IsAdmin    bool             `json:"isAdmin"`
	IsDoctor   bool             `json:"isDoctor"`
	Identity   *domain.Identity `json:"identity,omitempty"`
}

// Shell derives the navigation state from the session.
func Shell(ctx context.Context, s *Session) ShellView {
	if !s.IsAuthenticated(ctx) {
		return ShellView{}
	}
	v := ShellView{IsLoggedIn: true, Identity: s.CurrentIdentity(ctx)}
	if v.Identity != nil {
		v.IsAdmin = v.Identity.Role == domain.RoleAdmin
		v.IsDoctor = v.Identity.Role == domain.RoleDoctor
	}
	return v
}

// Profile reads and updates the caller's own account.
type Profile struct {
	gw ports.UserGateway
}

func NewProfile(gw ports.UserGateway) *Profile {
	return &Profile{gw: gw}
}

func (p *Profile) Get(ctx context.Context) (*domain.UserProfile, error) {
	return p.gw.Profile(ctx)
}

func (p *Profile) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}
	return p.gw.UpdateProfile(ctx, update)
}
