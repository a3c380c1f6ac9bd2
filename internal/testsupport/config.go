package testsupport

import (
	"path/filepath"
	"testing"

	"cinemap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// The collection uses the file backend unless WithBackend overrides it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.AccessToken = "test"
	cfgVal.Storage.Backend = config.BackendFile
	cfgVal.Storage.Path = filepath.Join(base, "collection.json")
	cfgVal.Web.Bind = "127.0.0.1:0"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithBackend switches the storage backend and points it at a fresh path
// inside the test directory.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = backend
		switch backend {
		case config.BackendSQLite:
			b.cfg.Storage.Path = filepath.Join(b.baseDir, "collection.db")
		case config.BackendBadger:
			b.cfg.Storage.Path = filepath.Join(b.baseDir, "badger")
		default:
			b.cfg.Storage.Path = filepath.Join(b.baseDir, "collection.json")
		}
	}
}

// WithAccessToken sets the TMDB access token on the test config.
func WithAccessToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.AccessToken = token
	}
}

// WithDefaultIDs overrides the bootstrap list.
func WithDefaultIDs(ids ...int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Collection.DefaultIDs = ids
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Storage.Path)
}
