package services

import "context"

type (
	movieIDKey   struct{}
	operationKey struct{}
	requestIDKey struct{}
)

// WithMovieID tags ctx with the TMDB id being worked on. Non-positive ids
// are ignored.
func WithMovieID(ctx context.Context, id int64) context.Context {
	if id <= 0 {
		return ctx
	}
	return context.WithValue(ctx, movieIDKey{}, id)
}

// MovieIDFromContext returns the TMDB id set by WithMovieID.
func MovieIDFromContext(ctx context.Context) (int64, bool) {
	return valueFrom[int64](ctx, movieIDKey{})
}

// WithOperation tags ctx with the collection action being performed
// (add, rate, bootstrap, ...).
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey{}, operation)
}

func OperationFromContext(ctx context.Context) (string, bool) {
	return valueFrom[string](ctx, operationKey{})
}

// WithRequestID tags ctx with the web request correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom[string](ctx, requestIDKey{})
}

func valueFrom[T comparable](ctx context.Context, key any) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	if !ok || v == zero {
		return zero, false
	}
	return v, true
}
