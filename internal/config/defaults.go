package config

import "time"

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendBadger = "badger"
)

const (
	defaultConfigPath            = "~/.config/cinemap/config.toml"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL      = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage          = "en-US"
	defaultTMDBTimeoutSeconds    = 10
	defaultTMDBRequestsPerSecond = 20
	defaultTMDBMaxRetries        = 2
	defaultSearchCacheSize       = 256
	defaultSearchCacheTTLSeconds = 600
	defaultRecordCacheTTLSeconds = 3600
	defaultStorageBackend        = BackendSQLite
	defaultSQLitePath            = "~/.local/share/cinemap/collection.db"
	defaultFilePath              = "~/.local/share/cinemap/collection.json"
	defaultBadgerPath            = "~/.local/share/cinemap/badger"
	defaultWebBind               = "127.0.0.1:7480"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// defaultMovieIDs seeds a fresh collection: Pulp Fiction, The Godfather,
// Fight Club, The Dark Knight, Forrest Gump, The Shawshank Redemption,
// Schindler's List, The Return of the King, Inception, The Matrix.
var defaultMovieIDs = []int64{680, 238, 550, 155, 13, 278, 424, 122, 27205, 603}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:               defaultTMDBBaseURL,
			ImageBaseURL:          defaultTMDBImageBaseURL,
			Language:              defaultTMDBLanguage,
			TimeoutSeconds:        defaultTMDBTimeoutSeconds,
			RequestsPerSecond:     defaultTMDBRequestsPerSecond,
			MaxRetries:            defaultTMDBMaxRetries,
			SearchCacheSize:       defaultSearchCacheSize,
			SearchCacheTTLSeconds: defaultSearchCacheTTLSeconds,
			RecordCacheTTLSeconds: defaultRecordCacheTTLSeconds,
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
		},
		Collection: Collection{
			DefaultIDs:       append([]int64(nil), defaultMovieIDs...),
			BootstrapOnEmpty: true,
		},
		Web: Web{
			Bind: defaultWebBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Timeout returns the TMDB HTTP client timeout.
func (t TMDB) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// SearchCacheTTL returns how long search results stay cached.
func (t TMDB) SearchCacheTTL() time.Duration {
	return time.Duration(t.SearchCacheTTLSeconds) * time.Second
}

// RecordCacheTTL returns how long normalized records stay cached.
func (t TMDB) RecordCacheTTL() time.Duration {
	return time.Duration(t.RecordCacheTTLSeconds) * time.Second
}

func defaultStoragePath(backend string) string {
	switch backend {
	case BackendFile:
		return defaultFilePath
	case BackendBadger:
		return defaultBadgerPath
	default:
		return defaultSQLitePath
	}
}
