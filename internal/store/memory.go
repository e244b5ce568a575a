package store

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It is the fallback when no
// durable backend is available; everything is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Namespace]map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Namespace]map[string][]byte)}
}

// Get returns a copy of the value stored under (ns, key).
func (m *MemoryStore) Get(_ context.Context, ns Namespace, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[ns][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under (ns, key).
func (m *MemoryStore) Set(_ context.Context, ns Namespace, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[ns]
	if !ok {
		bucket = make(map[string][]byte)
		m.data[ns] = bucket
	}
	bucket[key] = append([]byte(nil), value...)
	return nil
}

// Durable reports false.
func (m *MemoryStore) Durable() bool { return false }

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
