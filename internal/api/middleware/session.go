package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/pkg/metrics"
)

// SessionCookie names the cookie carrying the portal session id.
const SessionCookie = "portal_session"

const ctxWorkspace = "workspace"

// Workspace is everything one browser session owns: its Session and the
// view objects of each screen.
type Workspace struct {
	ID           string
	Session      *service.Session
	Appointments *service.AppointmentBoard
	Search       *service.DoctorSearch
	Directory    *service.UserDirectory
	Profile      *service.Profile

	newBooking func() *service.BookingFlow
	newDesk    func(doctorID int64) *service.DoctorDesk

	mu       sync.Mutex
	booking  *service.BookingFlow
	desk     *service.DoctorDesk
	lastSeen time.Time
	release  func()
}

// WorkspaceParts are the constructors a Registry uses to assemble a
// Workspace for a new session id.
type WorkspaceParts struct {
	Session      *service.Session
	Appointments *service.AppointmentBoard
	Search       *service.DoctorSearch
	Directory    *service.UserDirectory
	Profile      *service.Profile
	NewBooking   func() *service.BookingFlow
	NewDesk      func(doctorID int64) *service.DoctorDesk
}

// WorkspaceBuilder wires the parts for id against store.
type WorkspaceBuilder func(id string, store ports.ClientStorage) WorkspaceParts

// StartBooking replaces the booking flow, as navigating to a booking page does.
func (w *Workspace) StartBooking(in service.BookingInput) *service.BookingFlow {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.booking = w.newBooking()
	w.booking.Prefill(in)
	return w.booking
}

// Booking returns the current booking flow, starting one if none exists.
func (w *Workspace) Booking() *service.BookingFlow {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.booking == nil {
		w.booking = w.newBooking()
	}
	return w.booking
}

// Desk returns the doctor desk for doctorID. A different doctor id starts
// a fresh desk.
func (w *Workspace) Desk(doctorID int64) *service.DoctorDesk {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.desk == nil || w.desk.DoctorID() != doctorID {
		w.desk = w.newDesk(doctorID)
	}
	return w.desk
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Registry holds the live workspaces keyed by session id.
type Registry struct {
	storage ports.StorageProvider
	build   WorkspaceBuilder
	log     zerolog.Logger
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewRegistry(storage ports.StorageProvider, build WorkspaceBuilder, log zerolog.Logger) *Registry {
	return &Registry{
		storage: storage,
		build:   build,
		log:     log,
		now:     time.Now,
		items:   make(map[string]*Workspace),
	}
}

// Get returns the workspace for id, restoring a new one from storage.
// Restoring runs outside the registry lock.
func (r *Registry) Get(ctx context.Context, id string) (*Workspace, error) {
	if ws, ok := r.lookup(id); ok {
		return ws, nil
	}

	parts := r.build(id, r.storage.Namespace(id))
	if err := parts.Session.Restore(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.items[id]; ok {
		ws.touch(r.now())
		return ws, nil
	}

	ws := &Workspace{
		ID:           id,
		Session:      parts.Session,
		Appointments: parts.Appointments,
		Search:       parts.Search,
		Directory:    parts.Directory,
		Profile:      parts.Profile,
		newBooking:   parts.NewBooking,
		newDesk:      parts.NewDesk,
		lastSeen:     r.now(),
	}
	ws.release = r.watch(id, parts.Session)

	r.items[id] = ws
	metrics.SessionsActive.Inc()
	return ws, nil
}

func (r *Registry) lookup(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.items[id]
	if ok {
		ws.touch(r.now())
	}
	return ws, ok
}

// watch follows the session's auth state until the returned release is called.
func (r *Registry) watch(id string, s *service.Session) func() {
	ch, release := s.Subscribe()
	go func() {
		for authenticated := range ch {
			r.log.Debug().Str("session", id).Bool("authenticated", authenticated).Msg("auth state")
		}
	}()
	return release
}

// Drop releases the workspace and forgets everything stored for id.
func (r *Registry) Drop(ctx context.Context, id string) error {
	r.mu.Lock()
	ws, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()

	if ok {
		ws.release()
		metrics.SessionsActive.Dec()
	}
	return r.storage.Drop(ctx, id)
}

// Sweep drops workspaces not seen for longer than idle and returns how many
// it dropped.
func (r *Registry) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []string
	for id, ws := range r.items {
		if ws.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.Unlock()

	for _, id := range stale {
		if err := r.Drop(ctx, id); err != nil {
			r.log.Warn().Err(err).Str("session", id).Msg("drop idle session")
		}
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Sessions attaches the caller's Workspace to the request, issuing a new
// session cookie when none or a malformed one is presented.
func Sessions(reg *Registry, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(opts.MaxAge.Seconds()),
				})
			}

			ws, err := reg.Get(c.Request().Context(), id)
			if err != nil {
				return err
			}
			c.Set(ctxWorkspace, ws)
			return next(c)
		}
	}
}

// WorkspaceFrom returns the workspace Sessions attached, or nil.
func WorkspaceFrom(c echo.Context) *Workspace {
	ws, _ := c.Get(ctxWorkspace).(*Workspace)
	return ws
}
