package config

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	AccessToken           string `toml:"access_token"`
	BaseURL               string `toml:"base_url"`
	ImageBaseURL          string `toml:"image_base_url"`
	Language              string `toml:"language"`
	TimeoutSeconds        int    `toml:"timeout_seconds"`
	RequestsPerSecond     int    `toml:"requests_per_second"`
	MaxRetries            int    `toml:"max_retries"`
	SearchCacheSize       int    `toml:"search_cache_size"`
	SearchCacheTTLSeconds int    `toml:"search_cache_ttl_seconds"`
	RecordCacheTTLSeconds int    `toml:"record_cache_ttl_seconds"`
}

// Storage selects the persistence backend for the collection.
type Storage struct {
	Backend string `toml:"backend"` // sqlite, file, or badger
	Path    string `toml:"path"`
}

// Collection contains bootstrap settings for the movie collection.
type Collection struct {
	DefaultIDs       []int64 `toml:"default_ids"`
	BootstrapOnEmpty bool    `toml:"bootstrap_on_empty"`
}

// Web contains configuration for the local web UI.
type Web struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for cinemap.
//
// Configuration sections by subsystem:
//   - TMDB: catalog credentials, endpoints, and client resilience knobs
//   - Storage: persistence backend and data path
//   - Collection: default bootstrap list
//   - Web: local web UI bind address
//   - Logging: log format, level, and optional file
type Config struct {
	TMDB       TMDB       `toml:"tmdb"`
	Storage    Storage    `toml:"storage"`
	Collection Collection `toml:"collection"`
	Web        Web        `toml:"web"`
	Logging    Logging    `toml:"logging"`
}
