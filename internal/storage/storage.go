// Package storage is the per-user key/value persistence layer. Every value is
// an opaque JSON blob keyed by (user email, state key); the rest of the app
// only needs load-on-login and save-on-mutation semantics.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable wraps backend failures so callers can degrade to
// in-memory-only operation for the rest of the session.
var ErrUnavailable = errors.New("persistence unavailable")

// Per-user state keys. One namespace per user email.
const (
	KeyProfile       = "profile"
	KeyTasks         = "tasks"
	KeyShopping      = "shopping"
	KeyMood          = "mood"
	KeyCycle         = "cycle"
	KeyNotifications = "notifications"
)

// Store is the narrow persistence contract. Load returns (nil, nil) when the
// key has never been written.
type Store interface {
	Load(ctx context.Context, email, key string) ([]byte, error)
	Save(ctx context.Context, email, key string, value []byte) error
	Delete(ctx context.Context, email, key string) error
	DeleteAll(ctx context.Context, email string) error
}
