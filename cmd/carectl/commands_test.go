package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/memory"
	"github.com/carepoint/appointment-portal/internal/pkg/config"
)

func newTestApp(t *testing.T, mux *http.ServeMux, input string, loggedIn bool) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := memory.New().Namespace(namespace)
	if loggedIn {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":    7,
			"email": "ann@x.com",
			"roles": []string{"ROLE_PATIENT"},
			"exp":   time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		_ = store.SetItem(context.Background(), ports.KeyToken, token)
	}

	a, err := newApp(context.Background(), config.BackendConfig{APIBaseURL: srv.URL, AuthBaseURL: srv.URL}, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	out := &bytes.Buffer{}
	a.out = out
	a.in = bufio.NewReader(strings.NewReader(input))
	return a, out
}

func TestBook_ConflictJoinsWaitlistOnYes(t *testing.T) {
	joined := ""
	mux := http.NewServeMux()
	mux.HandleFunc("POST /appointments/book", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slot taken"}`))
	})
	mux.HandleFunc("POST /doctors/3/waitlist/join", func(w http.ResponseWriter, r *http.Request) {
		joined = r.URL.Query().Get("preferredDate")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Added to waitlist"}`))
	})

	a, out := newTestApp(t, mux, "y\n", true)
	err := a.dispatch(context.Background(), "book", []string{"-doctor", "3", "-date", "2026-11-02", "-time", "09:30"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if joined != "2026-11-02" {
		t.Fatalf("expected waitlist join for 2026-11-02, got %q", joined)
	}
	if !strings.Contains(out.String(), "Slot taken") || !strings.Contains(out.String(), "Added to waitlist") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestBook_ConflictDeclined(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /appointments/book", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	mux.HandleFunc("POST /doctors/3/waitlist/join", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("waitlist must not be joined")
	})

	a, out := newTestApp(t, mux, "\n", true)
	err := a.dispatch(context.Background(), "book", []string{"-doctor", "3", "-date", "2026-11-02", "-time", "09:30"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !strings.Contains(out.String(), "already booked") {
		t.Fatalf("expected default conflict message, got %q", out.String())
	}
}

func TestDispatch_RequiresLogin(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux(), "", false)

	err := a.dispatch(context.Background(), "list", nil)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if !strings.Contains(describe(err), "carectl login") {
		t.Fatalf("unexpected description %q", describe(err))
	}
}

func TestList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments/my-appointments", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("expected bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":41,"doctorName":"Dr. Ray","appointmentDateTime":"2026-11-02T09:30:00","status":"SCHEDULED"}]`))
	})

	a, out := newTestApp(t, mux, "", true)
	if err := a.dispatch(context.Background(), "list", nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "Dr. Ray") || !strings.Contains(out.String(), "SCHEDULED") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCancel_InvalidID(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux(), "", true)
	if err := a.dispatch(context.Background(), "cancel", []string{"abc"}); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}
