package tmdb

import (
	"fmt"
	"net/http"
	"time"

	"cinemap/internal/services"
)

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	Operation  string
	StatusCode int
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d (latency=%v)", e.Operation, e.StatusCode, e.Latency)
}

// Unwrap classifies the status for errors.Is checks against the services markers.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return services.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return services.ErrConfiguration
	case e.retryable():
		return services.ErrTransient
	default:
		return nil
	}
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
