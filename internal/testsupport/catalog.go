package testsupport

import (
	"context"
	"fmt"
	"sync"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/movie"
)

// NoResultsQuery is the search query StubCatalog answers with nothing.
const NoResultsQuery = "none"

// StubCatalog is an in-memory stand-in for catalog.Catalog. Every id not in
// Missing resolves to a movie titled "Movie <id>" with an 8.4 vote average.
type StubCatalog struct {
	Results  []tmdb.SearchResult
	Missing  map[int64]bool
	Director func(id int64) string
	Genres   string
	// Gate, when set, holds every fetch until it is closed.
	Gate chan struct{}

	mu      sync.Mutex
	fetches int
}

func (c *StubCatalog) Search(ctx context.Context, query string) []tmdb.SearchResult {
	if query == NoResultsQuery {
		return nil
	}
	return c.Results
}

func (c *StubCatalog) FetchComplete(ctx context.Context, id int64) *movie.Movie {
	c.mu.Lock()
	c.fetches++
	c.mu.Unlock()
	if c.Gate != nil {
		select {
		case <-c.Gate:
		case <-ctx.Done():
			return nil
		}
	}
	if c.Missing[id] {
		return nil
	}

	director := fmt.Sprintf("Director %d", id%2)
	if c.Director != nil {
		director = c.Director(id)
	}
	genres := c.Genres
	if genres == "" {
		genres = "Crime, Drama"
	}
	vote := 8.4
	return &movie.Movie{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		Director:    director,
		Overview:    movie.NoOverview,
		Genres:      genres,
		VoteAverage: &vote,
	}
}

func (c *StubCatalog) FetchMany(ctx context.Context, ids []int64) []movie.Movie {
	out := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		if m := c.FetchComplete(ctx, id); m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// Fetches reports how many FetchComplete calls were made.
func (c *StubCatalog) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}
