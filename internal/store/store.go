package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Namespace is a logical partition of the key-value store.
type Namespace string

const (
	// NamespaceSynced holds small settings-like records that may be
	// shared across machines.
	NamespaceSynced Namespace = "synced"

	// NamespaceLocal holds larger cache-like records such as the
	// notification list.
	NamespaceLocal Namespace = "local"
)

// Well-known keys.
const (
	KeyPreferences   = "preferences"
	KeyNotifications = "notifications"
	KeyPollerLease   = "poller-lease"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// KV is the persistence interface shared by every backend. Values are
// opaque bytes; writes replace the whole value.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, ns Namespace, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, ns Namespace, key string, value []byte) error

	// Durable reports whether writes survive a restart.
	Durable() bool

	// Close releases the underlying resources.
	Close() error
}

// GetJSON decodes the JSON value stored under key into dst.
func GetJSON(ctx context.Context, kv KV, ns Namespace, key string, dst any) error {
	data, err := kv.Get(ctx, ns, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s/%s: %w", ns, key, err)
	}
	return nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, kv KV, ns Namespace, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", ns, key, err)
	}
	return kv.Set(ctx, ns, key, data)
}
