// Package redis stores portal client state in Redis hashes, one per session.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config captures the settings of the Redis client-storage backend.
type Config struct {
	Addr       string
	DB         int
	SessionTTL time.Duration
}

// Open connects to Redis, checks it answers a ping within dialTimeout and
// returns a Store over the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewStore(client, cfg.SessionTTL), nil
}
