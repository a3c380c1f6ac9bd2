// Package movie defines the Movie record and the pure collection functions
// that operate on an ordered list of movies.
//
// Every function in this package returns a new slice and leaves its input
// untouched, so callers can compute a candidate list, persist it, and only
// then adopt it as the current state. Display helpers translate the user
// rating and TMDB vote average into the strings and star fill fractions the
// CLI and web front ends render.
package movie
