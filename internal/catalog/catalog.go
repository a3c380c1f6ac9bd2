package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/services"
)

const (
	defaultSearchCacheSize = 256
	defaultSearchCacheTTL  = 10 * time.Minute
	defaultRecordCacheTTL  = time.Hour
)

// Options tunes a Catalog.
type Options struct {
	ImageBaseURL    string
	SearchCacheSize int
	SearchCacheTTL  time.Duration
	RecordCacheTTL  time.Duration
	Logger          *slog.Logger
}

// Catalog is a degrading facade over the TMDB client.
type Catalog struct {
	client    tmdb.Searcher
	imageBase string
	logger    *slog.Logger
	searches  *ttlLRU[[]tmdb.SearchResult]
	records   *cache.Cache
	group     singleflight.Group
}

// New builds a Catalog over client.
func New(client tmdb.Searcher, opts Options) *Catalog {
	if opts.SearchCacheSize <= 0 {
		opts.SearchCacheSize = defaultSearchCacheSize
	}
	if opts.SearchCacheTTL <= 0 {
		opts.SearchCacheTTL = defaultSearchCacheTTL
	}
	if opts.RecordCacheTTL <= 0 {
		opts.RecordCacheTTL = defaultRecordCacheTTL
	}
	return &Catalog{
		client:    client,
		imageBase: opts.ImageBaseURL,
		logger:    logging.NewComponentLogger(opts.Logger, "catalog"),
		searches:  newTTLLRU[[]tmdb.SearchResult](opts.SearchCacheSize, opts.SearchCacheTTL),
		records:   cache.New(opts.RecordCacheTTL, 2*opts.RecordCacheTTL),
	}
}

// Search returns TMDB matches for query, or nil when the lookup fails.
func (c *Catalog) Search(ctx context.Context, query string) []tmdb.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	key := strings.ToLower(query)
	if cached, ok := c.searches.Get(key); ok {
		return append([]tmdb.SearchResult(nil), cached...)
	}

	resp, err := c.client.SearchMovie(ctx, query)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "tmdb search failed",
			"catalog_search_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.String(logging.FieldImpact, "no search results shown"),
		)
		return nil
	}
	results := append([]tmdb.SearchResult(nil), resp.Results...)
	c.searches.Set(key, results)
	return append([]tmdb.SearchResult(nil), results...)
}

// FetchDetails returns the TMDB details for id, or nil on failure.
func (c *Catalog) FetchDetails(ctx context.Context, id int64) *tmdb.Details {
	details, err := c.client.MovieDetails(ctx, id)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "tmdb details lookup failed",
			"catalog_details_failed",
			logging.MovieID(id),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.String(logging.FieldImpact, "movie skipped"),
		)
		return nil
	}
	return details
}

// FetchCredits returns the TMDB credits for id, or nil on failure.
func (c *Catalog) FetchCredits(ctx context.Context, id int64) *tmdb.Credits {
	credits, err := c.client.MovieCredits(ctx, id)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "tmdb credits lookup failed",
			"catalog_credits_failed",
			logging.MovieID(id),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.String(logging.FieldImpact, "director recorded as "+movie.UnknownDirector),
		)
		return nil
	}
	return credits
}

// FetchComplete fetches details and credits for id in parallel and returns
// the normalized movie, or nil when the details lookup fails or ctx ends.
func (c *Catalog) FetchComplete(ctx context.Context, id int64) *movie.Movie {
	key := strconv.FormatInt(id, 10)
	if cached, ok := c.records.Get(key); ok {
		m := cached.(movie.Movie)
		return &m
	}

	// The shared fetch must outlive any one caller; each caller still
	// stops waiting when its own ctx ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetchComplete(shared, id), nil
	})
	var result *movie.Movie
	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		result, _ = res.Val.(*movie.Movie)
	}
	if result == nil {
		return nil
	}
	m := *result
	return &m
}

func (c *Catalog) fetchComplete(ctx context.Context, id int64) *movie.Movie {
	var (
		details *tmdb.Details
		credits *tmdb.Credits
		g       errgroup.Group
	)
	g.Go(func() error {
		details = c.FetchDetails(ctx, id)
		return nil
	})
	g.Go(func() error {
		credits = c.FetchCredits(ctx, id)
		return nil
	})
	_ = g.Wait()

	if details == nil {
		return nil
	}
	if details.ID == 0 {
		details.ID = id
	}
	m := Normalize(details, credits, c.imageBase)
	if credits != nil {
		c.records.SetDefault(strconv.FormatInt(id, 10), m)
	}
	c.logger.Debug("movie fetched",
		logging.MovieID(id),
		logging.String("title", m.Title),
		logging.Bool("credits", credits != nil))
	return &m
}

// FetchMany fetches every id concurrently and returns the movies that were
// found, in the order their ids were given. Failed ids are dropped.
func (c *Catalog) FetchMany(ctx context.Context, ids []int64) []movie.Movie {
	results := make([]*movie.Movie, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			results[i] = c.FetchComplete(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	movies := make([]movie.Movie, 0, len(ids))
	for _, m := range results {
		if m != nil {
			movies = append(movies, *m)
		}
	}
	if dropped := len(ids) - len(movies); dropped > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "some movies could not be fetched",
			"catalog_batch_partial",
			logging.Int("requested", len(ids)),
			logging.Int("fetched", len(movies)),
			logging.Int("dropped", dropped),
			logging.String(logging.FieldErrorHint, "see preceding catalog warnings for each id"),
			logging.String(logging.FieldImpact, "collection starts without the missing movies"),
		)
	}
	return movies
}

func hintFor(err error) string {
	switch {
	case services.IsUserError(err):
		return "check the movie id or query"
	case errors.Is(err, services.ErrConfiguration):
		return "check tmdb.access_token or TMDB_ACCESS_TOKEN"
	default:
		return "check network connectivity and TMDB status"
	}
}
