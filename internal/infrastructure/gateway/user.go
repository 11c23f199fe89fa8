package gateway

import (
	"context"
	"net/http"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
)

type UserGateway struct {
	c *Client
}

var _ ports.UserGateway = (*UserGateway)(nil)

func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{c: c}
}

func (g *UserGateway) Profile(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := g.c.do(ctx, call{op: "profile", method: http.MethodGet, path: "/users/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *UserGateway) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := g.c.do(ctx, call{op: "update_profile", method: http.MethodPut, path: "/users/profile", body: update}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
