package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/metrics"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// DecodeIdentity reads the identity claims of a bearer credential without
// verifying its signature; the backend stays the only authority on validity.
// A credential whose exp is at or before now yields ErrCredentialExpired.
func DecodeIdentity(token string, now time.Time) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialUnreadable, err)
	}
	if expired(claims, now) {
		return nil, domain.ErrCredentialExpired
	}

	return &domain.Identity{
		ID:        claimInt(claims["id"]),
		Email:     claimString(claims["email"]),
		FirstName: claimString(claims["firstName"]),
		LastName:  claimString(claims["lastName"]),
		Role:      domain.ResolveRole(roleClaims(claims)),
	}, nil
}

// roleClaims applies the claim precedence: a singular role wins, then the
// roles list, then authorities.
func roleClaims(claims jwt.MapClaims) []string {
	if r := claimString(claims["role"]); r != "" {
		return []string{r}
	}
	if v, ok := claims["roles"]; ok && v != nil {
		return claimStrings(v)
	}
	return claimStrings(claims["authorities"])
}

func expired(claims jwt.MapClaims, now time.Time) bool {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

func claimString(v any) string {
	s, _ := v.(string)
	return s
}

func claimInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

// claimStrings accepts both plain strings and Spring-style
// {"authority": "ROLE_X"} objects.
func claimStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case string:
			out = append(out, x)
		case map[string]any:
			if a, ok := x["authority"].(string); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// Session owns the credential, the derived identity and the auth-state
// broadcast for one client. It is safe for concurrent use.
type Session struct {
	auth  ports.AuthGateway
	store ports.ClientStorage
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.Mutex
	identity *domain.Identity
	state    bool
	subs     map[uint64]chan bool
	nextSub  uint64
}

func NewSession(auth ports.AuthGateway, store ports.ClientStorage, opts ...SessionOption) *Session {
	s := &Session{
		auth:  auth,
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		subs:  make(map[uint64]chan bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore rebuilds the in-memory identity from the stored credential and
// publishes the resulting auth state.
func (s *Session) Restore(ctx context.Context) error {
	token, ok, err := s.store.GetItem(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	var id *domain.Identity
	if ok {
		id = s.DeriveIdentity(ctx, token)
	}

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	s.publish(id != nil)
	return nil
}

// DeriveIdentity decodes token into an Identity. On an unreadable or expired
// credential it clears the stored session and returns nil.
func (s *Session) DeriveIdentity(ctx context.Context, token string) *domain.Identity {
	id, err := DecodeIdentity(token, s.now())
	if err == nil {
		return id
	}

	reason := "unreadable"
	if errors.Is(err, domain.ErrCredentialExpired) {
		reason = "expired"
	}
	s.log.Debug().Err(err).Str("reason", reason).Msg("dropping stored credential")
	s.evict(ctx, reason)
	return nil
}

// IsAuthenticated reports whether a non-expired credential is stored.
// An expired credential is evicted as a side effect.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, ok, err := s.store.GetItem(ctx, ports.KeyToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("read credential")
		return false
	}
	if !ok || token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.log.Debug().Err(err).Msg("stored credential unreadable")
		return false
	}
	if expired(claims, s.now()) {
		s.log.Debug().Msg("stored credential expired")
		s.evict(ctx, "expired")
		return false
	}
	return true
}

// CurrentIdentity prefers the persisted snapshot when it parses and carries a
// non-zero id and a known role, falling back to the decoded identity. Nil
// means anonymous.
func (s *Session) CurrentIdentity(ctx context.Context) *domain.Identity {
	raw, ok, err := s.store.GetItem(ctx, ports.KeyUser)
	if err != nil {
		s.log.Warn().Err(err).Msg("read identity snapshot")
	}
	if ok && raw != "" {
		var snap domain.Identity
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			s.log.Debug().Err(err).Msg("identity snapshot unreadable")
		} else if snap.ID != 0 && snap.Role.Valid() {
			return &snap
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Login exchanges credentials for a bearer token. On success the token and
// the identity snapshot are persisted and true is published.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}
	resp, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.AccessToken == "" {
		return resp, nil
	}

	// The snapshot describes the previous credential until replaced.
	if err := s.store.RemoveItem(ctx, ports.KeyUser); err != nil {
		return nil, fmt.Errorf("drop identity snapshot: %w", err)
	}
	if err := s.store.SetItem(ctx, ports.KeyToken, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}
	id := s.DeriveIdentity(ctx, resp.AccessToken)
	if id == nil {
		return resp, nil
	}

	if resp.User != nil && resp.User.ID != 0 {
		snap := domain.Snapshot{ID: resp.User.ID, Email: resp.User.Email, Role: resp.User.Role}
		if !snap.Role.Valid() {
			snap.Role = id.Role
		}
		raw, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encode identity snapshot: %w", err)
		}
		if err := s.store.SetItem(ctx, ports.KeyUser, string(raw)); err != nil {
			return nil, fmt.Errorf("store identity snapshot: %w", err)
		}
	}

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	s.publish(true)

	s.log.Info().Int64("user_id", id.ID).Str("role", string(id.Role)).Msg("logged in")
	return resp, nil
}

func (s *Session) Register(ctx context.Context, reg domain.Registration) (*domain.MessageResponse, error) {
	if err := validation.Struct(reg); err != nil {
		return nil, err
	}
	return s.auth.Register(ctx, reg)
}

func (s *Session) ForgotPassword(ctx context.Context, email string) (*domain.MessageResponse, error) {
	if err := validation.Var("email", email, "required,email"); err != nil {
		return nil, err
	}
	return s.auth.ForgotPassword(ctx, email)
}

func (s *Session) ResetPassword(ctx context.Context, reset domain.PasswordReset) (*domain.MessageResponse, error) {
	if err := validation.Struct(reset); err != nil {
		return nil, err
	}
	return s.auth.ResetPassword(ctx, reset)
}

// Logout clears the credential and the snapshot and publishes false.
func (s *Session) Logout(ctx context.Context) error {
	err := s.clear(ctx)
	metrics.CredentialEvictionsTotal.WithLabelValues("logout").Inc()
	s.publish(false)
	return err
}

// Token implements ports.TokenSource. An expired credential is evicted and
// reported as no credential.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.store.GetItem(ctx, ports.KeyToken)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if !ok {
		return "", nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && expired(claims, s.now()) {
		s.evict(ctx, "expired")
		return "", nil
	}
	return token, nil
}

// State returns the last published auth state.
func (s *Session) State() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel carrying auth-state changes, starting with the
// current value. Slow readers only ever see the latest value. release stops
// delivery and closes the channel; calling it twice is safe.
func (s *Session) Subscribe() (<-chan bool, func()) {
	ch := make(chan bool, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state
	s.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, release
}

func (s *Session) publish(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = v
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (s *Session) evict(ctx context.Context, reason string) {
	if err := s.clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear stored session")
	}
	metrics.CredentialEvictionsTotal.WithLabelValues(reason).Inc()
	s.publish(false)
}

func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	return errors.Join(
		s.store.RemoveItem(ctx, ports.KeyToken),
		s.store.RemoveItem(ctx, ports.KeyUser),
	)
}
