package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"cinemap/internal/config"
	"cinemap/internal/logging"
	"cinemap/internal/store"
)

// MustOpenStore opens the configured store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// NewFileStore returns an unlocked file store in a fresh temp directory.
func NewFileStore(t testing.TB) store.Store {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "collection.json"), logging.NewNop())
}
