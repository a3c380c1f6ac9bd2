package store

import (
	"context"
	"fmt"
	"log/slog"

	"cinemap/internal/config"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
)

// CollectionKey is the fixed key that holds the persisted collection.
const CollectionKey = "movies"

// Store loads and saves the whole collection.
type Store interface {
	// Load returns the stored list, or an empty list when nothing is stored
	// or the stored value cannot be decoded.
	Load(ctx context.Context) ([]movie.Movie, error)
	// Save overwrites the stored list.
	Save(ctx context.Context, movies []movie.Movie) error
	// Clear removes the stored value.
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.Storage and wraps it in a file lock.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store: config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "store")

	var (
		backend Store
		err     error
	)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		backend, err = OpenSQLite(ctx, cfg.Storage.Path, logger)
	case config.BackendFile:
		backend = NewFileStore(cfg.Storage.Path, logger)
	case config.BackendBadger:
		backend, err = OpenBadger(cfg.Storage.Path, logger)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("store opened",
		logging.String("backend", cfg.Storage.Backend),
		logging.String("path", cfg.Storage.Path))
	return WithLock(backend, LockPath(cfg.Storage.Path)), nil
}
