package store

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"cinemap/internal/logging"
	"cinemap/internal/movie"
)

func encode(movies []movie.Movie) ([]byte, error) {
	if movies == nil {
		movies = []movie.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}

// decode never fails: unreadable payloads become an empty collection.
func decode(data []byte, logger *slog.Logger, backend string) []movie.Movie {
	if len(data) == 0 {
		return []movie.Movie{}
	}
	var movies []movie.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		logging.WarnWithContext(logger, "stored collection could not be decoded",
			"store_decode_failed",
			logging.String("backend", backend),
			logging.String("key", CollectionKey),
			logging.Int("bytes", len(data)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run 'cinemap reset' or 'cinemap clear' to overwrite the stored value"),
			logging.String(logging.FieldImpact, "collection treated as empty"),
		)
		return []movie.Movie{}
	}
	if movies == nil {
		return []movie.Movie{}
	}
	return movies
}
