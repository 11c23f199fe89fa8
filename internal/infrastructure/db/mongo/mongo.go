// Package mongo stores portal client state in a MongoDB collection, one
// document per session.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings of the MongoDB client-storage backend.
type Config struct {
	URI        string
	Database   string
	SessionTTL time.Duration
}

// Open connects, pings, ensures the expiry index and returns a Store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := NewStore(client, client.Database(cfg.Database))
	if cfg.SessionTTL > 0 {
		if err := store.EnsureIndexes(ctx, cfg.SessionTTL); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
	}
	return store, nil
}
