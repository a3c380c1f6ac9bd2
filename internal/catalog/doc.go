// Package catalog turns TMDB lookups into Movie records without ever
// returning errors to its callers.
//
// Failures are logged at WARN and surface as nil or empty results, which is
// what the collection front ends expect: a failed lookup simply produces no
// movie. FetchComplete fetches details and credits in parallel and
// normalizes them; FetchMany fans out a batch and keeps request order.
// Search results and completed records are cached in memory.
package catalog
