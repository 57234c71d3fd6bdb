// Package storage opens the key-value backend named in configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpggio/taskpad/internal/config"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/redisstore"
	"github.com/rpggio/taskpad/internal/repository"
	"github.com/rpggio/taskpad/internal/sqlite"
)

// Open returns the configured backend and a function releasing it.
func Open(ctx context.Context, cfg config.StoreConfig) (repository.KVStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), func() error { return nil }, nil
	case config.BackendRedis:
		store, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendSQLite, "":
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.NewKVStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
