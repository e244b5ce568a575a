package testutil

import (
	"context"
	"errors"

	"github.com/nhle/web3hub/internal/store"
)

// ErrInjected is returned by FailingStore when a failure is switched on.
var ErrInjected = errors.New("injected store failure")

// FailingStore is a KV whose reads and writes can be made to fail.
// Successful operations are delegated to an in-memory store.
type FailingStore struct {
	*store.MemoryStore

	FailGet bool
	FailSet bool
	Writes  int
}

// NewFailingStore returns a FailingStore that succeeds until told otherwise.
func NewFailingStore() *FailingStore {
	return &FailingStore{MemoryStore: store.NewMemoryStore()}
}

// Get fails with ErrInjected when FailGet is set.
func (f *FailingStore) Get(ctx context.Context, ns store.Namespace, key string) ([]byte, error) {
	if f.FailGet {
		return nil, ErrInjected
	}
	return f.MemoryStore.Get(ctx, ns, key)
}

// Set fails with ErrInjected when FailSet is set.
func (f *FailingStore) Set(ctx context.Context, ns store.Namespace, key string, value []byte) error {
	f.Writes++
	if f.FailSet {
		return ErrInjected
	}
	return f.MemoryStore.Set(ctx, ns, key, value)
}
