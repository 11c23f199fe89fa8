// Package bolt stores client state in a local bbolt file, one bucket per
// namespace. carectl uses it as its "local storage".
package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/carepoint/appointment-portal/internal/core/ports"
)

const openTimeout = time.Second

type Store struct {
	db *bbolt.DB
}

// Open creates path's directory if needed and opens the database file.
// It fails after openTimeout if another process holds the file lock.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("bolt dir: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("bolt open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Namespace(id string) ports.ClientStorage {
	return &namespace{db: s.db, bucket: []byte(id)}
}

func (s *Store) Drop(_ context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		err := tx.DeleteBucket([]byte(id))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func (s *Store) Ping(context.Context) error {
	return s.db.View(func(*bbolt.Tx) error { return nil })
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

type namespace struct {
	db     *bbolt.DB
	bucket []byte
}

func (n *namespace) GetItem(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := n.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(n.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, found, nil
}

func (n *namespace) SetItem(_ context.Context, key, value string) error {
	err := n.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(n.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (n *namespace) RemoveItem(_ context.Context, key string) error {
	err := n.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(n.bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
