package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore implements KV on an embedded Badger database.
type BadgerStore struct {
	db    *badger.DB
	inMem bool
}

// NewBadgerStore opens a Badger database in dir. An empty dir opens an
// in-memory instance.
func NewBadgerStore(dir string, logger *zap.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating badger dir %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	// The default INFO logging is a bit verbose
	opts = opts.
		WithLogger(badgerLogger{logger.Sugar()}).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &BadgerStore{db: db, inMem: dir == ""}, nil
}

func badgerKey(ns Namespace, key string) []byte {
	return []byte(string(ns) + "/" + key)
}

// Get returns the value stored under (ns, key).
func (b *BadgerStore) Get(_ context.Context, ns Namespace, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(ns, key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", ns, key, err)
	}
	return out, nil
}

// Set replaces the value stored under (ns, key).
func (b *BadgerStore) Set(_ context.Context, ns Namespace, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(ns, key), value)
	})
	if err != nil {
		return fmt.Errorf("setting %s/%s: %w", ns, key, err)
	}
	return nil
}

// Durable reports whether the database lives on disk.
func (b *BadgerStore) Durable() bool { return !b.inMem }

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.s.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.s.Debugf(format, args...) }
