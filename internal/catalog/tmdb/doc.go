// Package tmdb provides the typed TMDB v3 client used to look up movies.
//
// It covers movie search, movie details, and movie credits. Requests carry a
// bearer access token and the configured language, pass through a rate
// limiter and a circuit breaker, and retry with exponential backoff on 429,
// 5xx, and transport failures. Every failure is returned as an error; callers
// that prefer degraded results wrap the client (see package catalog).
// Options allow tests to supply custom HTTP clients or tune resilience
// without modifying production code.
package tmdb
