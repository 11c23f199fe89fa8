package ports

import "context"

// Keys under which the session persists its state. Both are cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ClientStorage is the per-client key/value store holding the credential and
// the identity snapshot. A missing key is reported with ok=false, not an error.
type ClientStorage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// TokenSource supplies the bearer credential attached to backend calls.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StorageProvider hands out one ClientStorage per client namespace (a portal
// session id, or a fixed name for the CLI).
type StorageProvider interface {
	Namespace(id string) ClientStorage
	// Drop forgets everything stored under id.
	Drop(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
