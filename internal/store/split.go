package store

import (
	"context"
	"errors"
)

// Split routes the synced namespace to one backend and the local
// namespace to another.
type Split struct {
	Synced KV
	Local  KV
}

func (s *Split) route(ns Namespace) KV {
	if ns == NamespaceSynced {
		return s.Synced
	}
	return s.Local
}

// Get reads from the backend owning ns.
func (s *Split) Get(ctx context.Context, ns Namespace, key string) ([]byte, error) {
	return s.route(ns).Get(ctx, ns, key)
}

// Set writes to the backend owning ns.
func (s *Split) Set(ctx context.Context, ns Namespace, key string, value []byte) error {
	return s.route(ns).Set(ctx, ns, key, value)
}

// Durable reports true only when both backends are durable.
func (s *Split) Durable() bool {
	return s.Synced.Durable() && s.Local.Durable()
}

// Close closes both backends.
func (s *Split) Close() error {
	return errors.Join(s.Synced.Close(), s.Local.Close())
}
