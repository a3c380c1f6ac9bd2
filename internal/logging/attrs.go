package logging

import (
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so callers can build fields without importing slog.
type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// MovieID tags a line with a TMDB movie id.
func MovieID(id int64) Attr { return slog.Int64(FieldMovieID, id) }

// Error records err under the "error" key. A nil error renders as "none".
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "none")
	}
	return slog.String("error", err.Error())
}

// Args converts attributes into the variadic form slog.Logger.With expects.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger scopes logger to a component. A nil logger yields a
// no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
