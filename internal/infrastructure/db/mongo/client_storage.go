package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/appointment-portal/internal/core/ports"
)

const collectionClientStorage = "client_storage"

// Store keeps one document per namespace: {_id, items, updated_at}.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, col: db.Collection(collectionClientStorage)}
}

type clientDoc struct {
	ID        string            `bson:"_id"`
	Items     map[string]string `bson:"items"`
	UpdatedAt int64             `bson:"updated_at"`
}

func (s *Store) Namespace(id string) ports.ClientStorage {
	return &namespace{col: s.col, id: id}
}

func (s *Store) Drop(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("drop session %s: %w", id, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes expires namespaces untouched for ttl.
func (s *Store) EnsureIndexes(ctx context.Context, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at_time", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	return err
}

type namespace struct {
	col *mongo.Collection
	id  string
}

func (n *namespace) GetItem(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	err := n.col.FindOne(ctx, bson.M{"_id": n.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	v, ok := doc.Items[key]
	return v, ok, nil
}

func (n *namespace) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"items." + key:    value,
		"updated_at":      now.Unix(),
		"updated_at_time": now,
	}}
	if _, err := n.col.UpdateByID(ctx, n.id, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (n *namespace) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$unset": bson.M{"items." + key: ""}}
	if _, err := n.col.UpdateByID(ctx, n.id, update); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
