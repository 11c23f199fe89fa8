package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/memory"
)

const otherSessionID = "9b0e6c1d-2f3a-4b5c-8d7e-1a2b3c4d5e6f"

// blockingStorage holds every read until release is closed.
type blockingStorage struct {
	ports.ClientStorage
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.ClientStorage.GetItem(ctx, key)
}

func TestRegistry_SlowRestoreDoesNotBlockOtherSessions(t *testing.T) {
	slow := &blockingStorage{entered: make(chan struct{}), release: make(chan struct{})}
	reg := NewRegistry(memory.New(), func(id string, cs ports.ClientStorage) WorkspaceParts {
		if id == sessionID {
			slow.ClientStorage = cs
			cs = slow
		}
		return WorkspaceParts{Session: service.NewSession(nil, cs)}
	}, zerolog.Nop())

	slowDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), sessionID)
		slowDone <- err
	}()
	<-slow.entered

	fastDone := make(chan error, 1)
	go func() {
		_, err := reg.Get(context.Background(), otherSessionID)
		fastDone <- err
	}()
	select {
	case err := <-fastDone:
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		close(slow.release)
		t.Fatalf("Get for another session waited on a slow restore")
	}

	close(slow.release)
	if err := <-slowDone; err != nil {
		t.Fatalf("slow Get returned error: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", reg.Len())
	}
}

func TestRegistry_ConcurrentGetSharesWorkspace(t *testing.T) {
	reg := newRegistry(memory.New())

	const n = 8
	got := make([]*Workspace, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws, err := reg.Get(context.Background(), sessionID)
			if err != nil {
				t.Errorf("Get returned error: %v", err)
				return
			}
			got[i] = ws
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatalf("expected one workspace per session id")
		}
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", reg.Len())
	}
}
