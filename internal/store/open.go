package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/model"
)

// redisDialTimeout bounds the startup PING against the synced backend.
const redisDialTimeout = 5 * time.Second

// Open builds the backend described by cfg. A durable backend that cannot
// be opened is replaced by a MemoryStore and a warning is logged, so the
// returned KV is always usable. Check Durable before assuming writes
// survive a restart.
func Open(ctx context.Context, cfg model.StorageConfig, logger *zap.Logger) KV {
	if logger == nil {
		logger = zap.NewNop()
	}

	local := openLocal(cfg, logger)
	if cfg.Redis.Addr == "" {
		return local
	}

	dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	synced, err := DialRedis(dialCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	if err != nil {
		logger.Warn("synced store unavailable, keeping settings in the local backend",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		return local
	}
	logger.Info("synced namespace backed by redis", zap.String("addr", cfg.Redis.Addr))
	return &Split{Synced: synced, Local: local}
}

func openLocal(cfg model.StorageConfig, logger *zap.Logger) KV {
	kv, err := openBackend(cfg, logger)
	if err != nil {
		logger.Warn("storage backend unavailable, falling back to memory; data will not survive a restart",
			zap.String("backend", cfg.Backend),
			zap.String("path", cfg.Path),
			zap.Error(err),
		)
		return NewMemoryStore()
	}
	return kv
}

func openBackend(cfg model.StorageConfig, logger *zap.Logger) (KV, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "badger":
		return NewBadgerStore(cfg.Path, logger)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
