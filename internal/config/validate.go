package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateCollection(); err != nil {
		return err
	}
	return c.validateLogging()
}

// RequireAccessToken reports a descriptive error when no TMDB credential is
// configured. Only commands that reach the catalog call it, so offline
// commands such as list keep working without a token.
func (c *Config) RequireAccessToken() error {
	if c.TMDB.AccessToken != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("tmdb.access_token is required. Set TMDB_ACCESS_TOKEN (a .env file works too) or edit %s (create with 'cinemap config init')", defaultPath)
}

func (c *Config) validateTMDB() error {
	for key, raw := range map[string]string{"tmdb.base_url": c.TMDB.BaseURL, "tmdb.image_base_url": c.TMDB.ImageBaseURL} {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
		}
	}
	if c.TMDB.Language != "" {
		if _, err := language.Parse(c.TMDB.Language); err != nil {
			return fmt.Errorf("tmdb.language %q is not a valid language tag: %w", c.TMDB.Language, err)
		}
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendBadger:
	default:
		return fmt.Errorf("storage.backend must be one of sqlite, file, badger; got %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must be set")
	}
	return nil
}

func (c *Config) validateCollection() error {
	for _, id := range c.Collection.DefaultIDs {
		if id <= 0 {
			return fmt.Errorf("collection.default_ids must contain positive TMDB ids, got %d", id)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
