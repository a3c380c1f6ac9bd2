package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTMDB()
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeCollection()
	c.Web.Bind = strings.TrimSpace(c.Web.Bind)
	if c.Web.Bind == "" {
		c.Web.Bind = defaultWebBind
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeTMDB() {
	c.TMDB.AccessToken = strings.TrimSpace(c.TMDB.AccessToken)
	if c.TMDB.AccessToken == "" {
		if value, ok := os.LookupEnv("TMDB_ACCESS_TOKEN"); ok {
			c.TMDB.AccessToken = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeoutSeconds
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		c.TMDB.RequestsPerSecond = defaultTMDBRequestsPerSecond
	}
	if c.TMDB.MaxRetries < 0 {
		c.TMDB.MaxRetries = 0
	}
	if c.TMDB.SearchCacheSize <= 0 {
		c.TMDB.SearchCacheSize = defaultSearchCacheSize
	}
	if c.TMDB.SearchCacheTTLSeconds <= 0 {
		c.TMDB.SearchCacheTTLSeconds = defaultSearchCacheTTLSeconds
	}
	if c.TMDB.RecordCacheTTLSeconds <= 0 {
		c.TMDB.RecordCacheTTLSeconds = defaultRecordCacheTTLSeconds
	}
}

func (c *Config) normalizeStorage() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultStorageBackend
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend)
	}
	var err error
	if c.Storage.Path, err = expandPath(c.Storage.Path); err != nil {
		return fmt.Errorf("storage.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCollection() {
	if len(c.Collection.DefaultIDs) == 0 {
		return
	}
	ids := make([]int64, 0, len(c.Collection.DefaultIDs))
	seen := make(map[int64]struct{}, len(c.Collection.DefaultIDs))
	for _, id := range c.Collection.DefaultIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	c.Collection.DefaultIDs = ids
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
