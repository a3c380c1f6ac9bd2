package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/services"
	"cinemap/internal/store"
)

var (
	// ErrDuplicate is returned when adding an id already in the collection.
	ErrDuplicate = fmt.Errorf("%w: movie already in collection", services.ErrValidation)
	// ErrUnavailable is returned when the catalog has no record for an id.
	ErrUnavailable = fmt.Errorf("%w: movie unavailable from catalog", services.ErrNotFound)
)

// Catalog is the subset of catalog.Catalog the library depends on.
type Catalog interface {
	Search(ctx context.Context, query string) []tmdb.SearchResult
	FetchComplete(ctx context.Context, id int64) *movie.Movie
	FetchMany(ctx context.Context, ids []int64) []movie.Movie
}

// Options configures a Library.
type Options struct {
	DefaultIDs       []int64
	BootstrapOnEmpty bool
	Logger           *slog.Logger
}

// Library is the application state: the current collection plus the store
// and catalog it is synchronized with.
type Library struct {
	mu      sync.Mutex
	movies  []movie.Movie
	store   store.Store
	catalog Catalog
	opts    Options
	logger  *slog.Logger
}

// Open loads the persisted collection.
func Open(ctx context.Context, st store.Store, cat Catalog, opts Options) (*Library, error) {
	if st == nil {
		return nil, errors.New("library: store is required")
	}
	if cat == nil {
		return nil, errors.New("library: catalog is required")
	}
	movies, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	lib := &Library{
		movies:  movies,
		store:   st,
		catalog: cat,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "library"),
	}
	lib.logger.Debug("collection loaded", logging.Int("count", len(movies)))
	return lib, nil
}

// Movies returns a copy of the collection in insertion order.
func (l *Library) Movies() []movie.Movie {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]movie.Movie{}, l.movies...)
}

// Len returns the collection size.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.movies)
}

// Get returns the movie with the given id.
func (l *Library) Get(id int64) (movie.Movie, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := movie.Find(l.movies, id); i >= 0 {
		return l.movies[i], true
	}
	return movie.Movie{}, false
}

// Bootstrap replaces the collection with the default movies fetched from
// the catalog. Ids the catalog cannot serve are skipped; the number of
// movies fetched is returned.
func (l *Library) Bootstrap(ctx context.Context) (int, error) {
	ctx = services.WithOperation(ctx, "bootstrap")
	fetched := l.catalog.FetchMany(ctx, l.opts.DefaultIDs)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear collection: %w", err)
	}
	l.movies = []movie.Movie{}
	if err := l.commit(ctx, fetched); err != nil {
		return 0, err
	}
	l.logger.Info("collection bootstrapped",
		logging.Int("requested", len(l.opts.DefaultIDs)),
		logging.Int("fetched", len(fetched)))
	return len(fetched), nil
}

// EnsureBootstrapped runs Bootstrap when the collection is empty and
// bootstrap-on-empty is enabled. It reports whether a bootstrap ran.
func (l *Library) EnsureBootstrapped(ctx context.Context) (bool, error) {
	if !l.opts.BootstrapOnEmpty || l.Len() > 0 {
		return false, nil
	}
	if _, err := l.Bootstrap(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Search delegates to the catalog.
func (l *Library) Search(ctx context.Context, query string) []tmdb.SearchResult {
	return l.catalog.Search(services.WithOperation(ctx, "search"), query)
}

// Add fetches id from the catalog and appends it. Duplicates are rejected
// before any network call.
func (l *Library) Add(ctx context.Context, id int64) (movie.Movie, error) {
	ctx = services.WithMovieID(services.WithOperation(ctx, "add"), id)
	if id <= 0 {
		return movie.Movie{}, services.Wrap(services.ErrValidation, "library", "add", "movie id must be positive", nil)
	}
	if l.contains(id) {
		return movie.Movie{}, ErrDuplicate
	}

	fetched := l.catalog.FetchComplete(ctx, id)
	if fetched == nil {
		return movie.Movie{}, ErrUnavailable
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Re-check: another request may have added the id while we were fetching.
	if movie.Exists(l.movies, id) {
		return movie.Movie{}, ErrDuplicate
	}
	if err := l.commit(ctx, movie.Add(l.movies, *fetched)); err != nil {
		return movie.Movie{}, err
	}
	l.logger.Debug("movie added",
		logging.MovieID(id),
		logging.String("title", fetched.Title))
	return *fetched, nil
}

// Update applies patch to the movie with the given id. It reports false when
// the id is not in the collection.
func (l *Library) Update(ctx context.Context, id int64, patch movie.Patch) (bool, error) {
	if err := patch.Validate(); err != nil {
		return false, err
	}
	return l.mutate(services.WithOperation(ctx, "update"), id, func(list []movie.Movie) []movie.Movie {
		return movie.Update(list, id, patch)
	})
}

// Rate sets the user rating (1-10) on the movie with the given id.
func (l *Library) Rate(ctx context.Context, id int64, rating int) (bool, error) {
	if err := movie.ValidateRating(rating); err != nil {
		return false, err
	}
	return l.mutate(services.WithOperation(ctx, "rate"), id, func(list []movie.Movie) []movie.Movie {
		return movie.Rate(list, id, rating)
	})
}

// Delete removes the movie with the given id.
func (l *Library) Delete(ctx context.Context, id int64) (bool, error) {
	return l.mutate(services.WithOperation(ctx, "delete"), id, func(list []movie.Movie) []movie.Movie {
		return movie.Delete(list, id)
	})
}

// Clear empties the collection and removes the stored value.
func (l *Library) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	l.movies = []movie.Movie{}
	l.logger.Debug("collection cleared")
	return nil
}

// ByDirector returns movies whose director matches name exactly.
func (l *Library) ByDirector(name string) []movie.Movie {
	l.mu.Lock()
	defer l.mu.Unlock()
	return movie.ByDirector(l.movies, name)
}

// ByGenre returns movies whose genres contain name.
func (l *Library) ByGenre(name string) []movie.Movie {
	l.mu.Lock()
	defer l.mu.Unlock()
	return movie.ByGenre(l.movies, name)
}

func (l *Library) contains(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return movie.Exists(l.movies, id)
}

// mutate applies fn and persists the result. The save happens even when id
// is unknown so the store always mirrors memory after a mutation call.
func (l *Library) mutate(ctx context.Context, id int64, fn func([]movie.Movie) []movie.Movie) (bool, error) {
	ctx = services.WithMovieID(ctx, id)
	l.mu.Lock()
	defer l.mu.Unlock()
	found := movie.Exists(l.movies, id)
	if err := l.commit(ctx, fn(l.movies)); err != nil {
		return false, err
	}
	if found {
		logging.WithContext(ctx, l.logger).Debug("collection updated")
	}
	return found, nil
}

// commit saves next and adopts it. Callers hold l.mu.
func (l *Library) commit(ctx context.Context, next []movie.Movie) error {
	if err := l.store.Save(ctx, next); err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, l.logger), "collection save failed",
			"library_save_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check storage.path permissions and free space"),
		)
		return fmt.Errorf("save collection: %w", err)
	}
	l.movies = next
	return nil
}
