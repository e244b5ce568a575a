package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements KV on a Redis server. Pointing several machines at
// the same server gives the synced namespace its cross-device behavior.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. Keys are stored as
// "<prefix>:<namespace>:<key>".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "web3hub"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// DialRedis connects to addr and verifies the server answers PING.
func DialRedis(ctx context.Context, addr, password string, db int, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis %s: %w", addr, err)
	}
	return NewRedisStore(rdb, prefix), nil
}

func (r *RedisStore) key(ns Namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, ns, key)
}

// Get returns the value stored under (ns, key).
func (r *RedisStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, r.key(ns, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", ns, key, err)
	}
	return v, nil
}

// Set replaces the value stored under (ns, key). Values never expire.
func (r *RedisStore) Set(ctx context.Context, ns Namespace, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.key(ns, key), value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s/%s: %w", ns, key, err)
	}
	return nil
}

// Durable reports true; persistence is the server's concern.
func (r *RedisStore) Durable() bool { return true }

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
