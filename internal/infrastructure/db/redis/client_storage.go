package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carepoint/appointment-portal/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// Store keeps each namespace as one hash.
// Key format: portal:session:<namespace>
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps client. Each write pushes the namespace expiry out by ttl;
// zero means defaultSessionTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Namespace(id string) ports.ClientStorage {
	return &namespace{store: s, key: s.key(id)}
}

func (s *Store) Drop(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("drop session %s: %w", id, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}

func (s *Store) key(id string) string {
	return "portal:session:" + id
}

type namespace struct {
	store *Store
	key   string
}

func (n *namespace) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := n.store.client.HGet(ctx, n.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (n *namespace) SetItem(ctx context.Context, key, value string) error {
	_, err := n.store.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, n.key, key, value)
		p.Expire(ctx, n.key, n.store.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (n *namespace) RemoveItem(ctx context.Context, key string) error {
	if err := n.store.client.HDel(ctx, n.key, key).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
