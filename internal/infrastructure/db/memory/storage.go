// Package memory keeps client storage in process memory. State is lost on
// restart, which makes it the default for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/carepoint/appointment-portal/internal/core/ports"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func New() *Store {
	return &Store{data: make(map[string]map[string]string)}
}

func (s *Store) Namespace(id string) ports.ClientStorage {
	return &namespace{store: s, id: id}
}

func (s *Store) Drop(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

type namespace struct {
	store *Store
	id    string
}

func (n *namespace) GetItem(_ context.Context, key string) (string, bool, error) {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	v, ok := n.store.data[n.id][key]
	return v, ok, nil
}

func (n *namespace) SetItem(_ context.Context, key, value string) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	items, ok := n.store.data[n.id]
	if !ok {
		items = make(map[string]string)
		n.store.data[n.id] = items
	}
	items[key] = value
	return nil
}

func (n *namespace) RemoveItem(_ context.Context, key string) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	delete(n.store.data[n.id], key)
	return nil
}
