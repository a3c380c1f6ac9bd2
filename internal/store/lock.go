package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"cinemap/internal/movie"
)

const lockRetryDelay = 25 * time.Millisecond

// LockPath returns the lock file location for a data path. The lock sits
// beside the data so it also works when the path is a BadgerDB directory.
func LockPath(dataPath string) string {
	return filepath.Clean(dataPath) + ".lock"
}

type lockedStore struct {
	inner Store
	lock  *flock.Flock
}

// WithLock guards inner with an advisory file lock so separate cinemap
// processes (a CLI command and a running web UI, say) do not interleave
// writes. Save and Clear take the exclusive lock; Load takes the shared one.
func WithLock(inner Store, lockPath string) Store {
	return &lockedStore{inner: inner, lock: flock.New(lockPath)}
}

func (s *lockedStore) Load(ctx context.Context) ([]movie.Movie, error) {
	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire shared store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire shared store lock: %s", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return s.inner.Load(ctx)
}

func (s *lockedStore) Save(ctx context.Context, movies []movie.Movie) error {
	return s.withExclusive(ctx, func() error { return s.inner.Save(ctx, movies) })
}

func (s *lockedStore) Clear(ctx context.Context) error {
	return s.withExclusive(ctx, func() error { return s.inner.Clear(ctx) })
}

func (s *lockedStore) withExclusive(ctx context.Context, fn func() error) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire store lock: %s", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *lockedStore) Close() error {
	_ = s.lock.Close()
	return s.inner.Close()
}
