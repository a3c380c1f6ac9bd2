package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cinemap/internal/catalog"
	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/config"
	"cinemap/internal/library"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/store"
)

type commandContext struct {
	configFlag  *string
	envFileFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger *slog.Logger
	store  store.Store
}

func newCommandContext(configFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		envFileFlag: envFileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := c.loadEnvFile(); err != nil {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadEnvFile populates the process environment from a dotenv file. Values
// already set in the environment win. A missing file is not an error.
func (c *commandContext) loadEnvFile() error {
	if c.envFileFlag == nil {
		return nil
	}
	path := strings.TrimSpace(*c.envFileFlag)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.logger = logger
	return logger, nil
}

// openLibrary opens the store and wires the catalog. When requireCatalog is
// false and no access token is configured, an offline catalog is used so
// purely local commands keep working.
func (c *commandContext) openLibrary(ctx context.Context, requireCatalog bool) (*library.Library, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	var cat library.Catalog
	switch {
	case cfg.TMDB.AccessToken != "":
		cat, err = newCatalog(cfg, logger)
		if err != nil {
			return nil, err
		}
	case requireCatalog:
		return nil, cfg.RequireAccessToken()
	default:
		cat = offlineCatalog{}
	}

	if c.store == nil {
		st, err := store.Open(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		c.store = st
	}

	return library.Open(ctx, c.store, cat, library.Options{
		DefaultIDs:       cfg.Collection.DefaultIDs,
		BootstrapOnEmpty: cfg.Collection.BootstrapOnEmpty,
		Logger:           logger,
	})
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func newCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	breakerLogger := logging.NewComponentLogger(logger, "tmdb")
	client, err := tmdb.New(cfg.TMDB.AccessToken, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(cfg.TMDB.Timeout()),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond),
		tmdb.WithRetries(cfg.TMDB.MaxRetries, 0),
		tmdb.WithBreakerStateHook(func(from, to string) {
			logging.WarnWithContext(breakerLogger, "tmdb circuit breaker changed state",
				"tmdb_breaker_state",
				logging.String("from", from),
				logging.String("to", to),
				logging.String(logging.FieldErrorHint, "check network connectivity and TMDB status"),
				logging.String(logging.FieldImpact, "catalog lookups fail fast while the breaker is open"),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("tmdb client: %w", err)
	}
	return catalog.New(client, catalog.Options{
		ImageBaseURL:    cfg.TMDB.ImageBaseURL,
		SearchCacheSize: cfg.TMDB.SearchCacheSize,
		SearchCacheTTL:  cfg.TMDB.SearchCacheTTL(),
		RecordCacheTTL:  cfg.TMDB.RecordCacheTTL(),
		Logger:          logger,
	}), nil
}

// offlineCatalog answers every lookup with nothing.
type offlineCatalog struct{}

func (offlineCatalog) Search(context.Context, string) []tmdb.SearchResult { return nil }

func (offlineCatalog) FetchComplete(context.Context, int64) *movie.Movie { return nil }

func (offlineCatalog) FetchMany(context.Context, []int64) []movie.Movie { return []movie.Movie{} }

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
