// Package storage provides the key-value persistence substrate the
// credential store and application state container write through. Every
// value is a JSON-encoded string under a well-known key, so backends are
// interchangeable and records survive restarts.
package storage

import (
	"context"
	"errors"
)

// Well-known keys. The account list and the session record are owned by the
// auth service; the app-state subset is owned by the state container.
const (
	KeyAccounts = "armonia_users"
	KeySession  = "armonia_user"
	KeyAppState = "armonia-app-store"
)

// ErrNotFound signals an absent key. Callers treat absence as empty state,
// never as a failure.
var ErrNotFound = errors.New("storage: key not found")

// Backend is the minimal surface the core consumes. Implementations are
// synchronous and apply no retries or timeouts of their own.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
