package catalog

import (
	"strings"
	"time"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/movie"
)

const directorJob = "Director"

// Normalize builds a Movie from TMDB details and credits. credits may be nil,
// in which case the director is recorded as movie.UnknownDirector.
func Normalize(details *tmdb.Details, credits *tmdb.Credits, imageBase string) movie.Movie {
	m := movie.Movie{
		ID:       details.ID,
		Title:    strings.TrimSpace(details.Title),
		Director: directorFrom(credits),
		Overview: strings.TrimSpace(details.Overview),
		Genres:   joinGenres(details.Genres),
	}
	if m.Overview == "" {
		m.Overview = movie.NoOverview
	}
	if year, ok := releaseYear(details.ReleaseDate); ok {
		m.Year = &year
	}
	m.PosterURL = imageURL(imageBase, details.PosterPath)
	m.BackdropURL = imageURL(imageBase, details.BackdropPath)
	if details.Runtime > 0 {
		runtime := details.Runtime
		m.Runtime = &runtime
	}
	if details.VoteCount > 0 || details.VoteAverage > 0 {
		vote := details.VoteAverage
		m.VoteAverage = &vote
	}
	return m
}

func directorFrom(credits *tmdb.Credits) string {
	if credits == nil {
		return movie.UnknownDirector
	}
	for _, member := range credits.Crew {
		if member.Job == directorJob && strings.TrimSpace(member.Name) != "" {
			return strings.TrimSpace(member.Name)
		}
	}
	return movie.UnknownDirector
}

func releaseYear(date string) (int, bool) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return 0, false
	}
	return parsed.Year(), true
}

func imageURL(base, path string) *string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path
	return &url
}

func joinGenres(genres []tmdb.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
