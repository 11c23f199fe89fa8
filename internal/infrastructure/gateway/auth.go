package gateway

import (
	"context"
	"net/http"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
)

// AuthGateway talks to the unauthenticated auth base URL.
type AuthGateway struct {
	c *Client
}

var _ ports.AuthGateway = (*AuthGateway)(nil)

func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

func (g *AuthGateway) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := g.c.do(ctx, call{op: "authenticate", method: http.MethodPost, path: "/authenticate", body: creds}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AuthGateway) Register(ctx context.Context, reg domain.Registration) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	if err := g.c.do(ctx, call{op: "register", method: http.MethodPost, path: "/register", body: reg}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AuthGateway) ForgotPassword(ctx context.Context, email string) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := g.c.do(ctx, call{
		op:     "forgot_password",
		method: http.MethodPost,
		path:   "/forgot-password",
		query:  query{}.str("email", email).values(),
		body:   struct{}{},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *AuthGateway) ResetPassword(ctx context.Context, reset domain.PasswordReset) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	if err := g.c.do(ctx, call{op: "reset_password", method: http.MethodPost, path: "/reset-password", body: reset}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
