package library_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/config"
	"cinemap/internal/library"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/services"
	"cinemap/internal/store"
	"cinemap/internal/testsupport"
)

type failingStore struct {
	store.Store
	failSave bool
}

func (s *failingStore) Save(ctx context.Context, movies []movie.Movie) error {
	if s.failSave {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, movies)
}

func openLibrary(t *testing.T, st store.Store, cat library.Catalog, opts library.Options) *library.Library {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	lib, err := library.Open(context.Background(), st, cat, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return lib
}

func TestAddDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	cat := &testsupport.StubCatalog{}
	lib := openLibrary(t, testsupport.NewFileStore(t), cat, library.Options{})

	if _, err := lib.Add(ctx, 680); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := lib.Add(ctx, 680)
	if !errors.Is(err, library.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if !services.IsUserError(err) {
		t.Fatal("duplicate should classify as a user error")
	}
	if lib.Len() != 1 {
		t.Fatalf("expected size 1, got %d", lib.Len())
	}
	if cat.Fetches() != 1 {
		t.Fatalf("duplicate must be rejected before fetching, saw %d fetches", cat.Fetches())
	}
}

func TestAddUnavailable(t *testing.T) {
	lib := openLibrary(t, testsupport.NewFileStore(t), &testsupport.StubCatalog{Missing: map[int64]bool{42: true}}, library.Options{})
	if _, err := lib.Add(context.Background(), 42); !errors.Is(err, library.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := lib.Add(context.Background(), 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for id 0, got %v", err)
	}
	if lib.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", lib.Len())
	}
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	st := testsupport.NewFileStore(t)
	lib := openLibrary(t, st, &testsupport.StubCatalog{}, library.Options{})
	for _, id := range []int64{680, 238, 550} {
		if _, err := lib.Add(ctx, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	ok, err := lib.Rate(ctx, 680, 7)
	if err != nil || !ok {
		t.Fatalf("rate: ok=%v err=%v", ok, err)
	}
	title := "Le Parrain"
	if ok, err := lib.Update(ctx, 238, movie.Patch{Title: &title}); err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if ok, err := lib.Delete(ctx, 550); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	reopened := openLibrary(t, st, &testsupport.StubCatalog{}, library.Options{})
	got := reopened.Movies()
	if len(got) != 2 || got[0].ID != 680 || got[1].ID != 238 {
		t.Fatalf("unexpected persisted collection: %+v", got)
	}
	if movie.DisplayRating(got[0]) != "7/10" {
		t.Fatalf("expected user rating to win, got %q", movie.DisplayRating(got[0]))
	}
	if got[1].Title != "Le Parrain" {
		t.Fatalf("expected updated title, got %q", got[1].Title)
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	lib := openLibrary(t, testsupport.NewFileStore(t), &testsupport.StubCatalog{}, library.Options{})
	if _, err := lib.Add(ctx, 13); err != nil {
		t.Fatal(err)
	}
	before := lib.Movies()

	if ok, err := lib.Rate(ctx, 999, 5); err != nil || ok {
		t.Fatalf("rate unknown: ok=%v err=%v", ok, err)
	}
	if ok, err := lib.Delete(ctx, 999); err != nil || ok {
		t.Fatalf("delete unknown: ok=%v err=%v", ok, err)
	}
	title := "x"
	if ok, err := lib.Update(ctx, 999, movie.Patch{Title: &title}); err != nil || ok {
		t.Fatalf("update unknown: ok=%v err=%v", ok, err)
	}
	after := lib.Movies()
	if len(after) != len(before) || after[0].Title != before[0].Title {
		t.Fatalf("collection changed: %+v", after)
	}
}

func TestValidationRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	lib := openLibrary(t, testsupport.NewFileStore(t), &testsupport.StubCatalog{}, library.Options{})
	if _, err := lib.Add(ctx, 13); err != nil {
		t.Fatal(err)
	}
	for _, rating := range []int{0, 11} {
		if _, err := lib.Rate(ctx, 13, rating); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
	blank := ""
	if _, err := lib.Update(ctx, 13, movie.Patch{Title: &blank}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
	if m, _ := lib.Get(13); m.Rating != nil || m.Title != "Movie 13" {
		t.Fatalf("invalid input must not mutate: %+v", m)
	}
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{Store: testsupport.NewFileStore(t)}
	lib := openLibrary(t, st, &testsupport.StubCatalog{}, library.Options{})
	if _, err := lib.Add(ctx, 680); err != nil {
		t.Fatal(err)
	}

	st.failSave = true
	if _, err := lib.Add(ctx, 238); err == nil {
		t.Fatal("expected save error")
	}
	if _, err := lib.Rate(ctx, 680, 9); err == nil {
		t.Fatal("expected save error")
	}
	got := lib.Movies()
	if len(got) != 1 || got[0].Rating != nil {
		t.Fatalf("memory must match the last successful save, got %+v", got)
	}
}

func TestBootstrapAndEnsure(t *testing.T) {
	ctx := context.Background()
	ids := []int64{680, 238, 550, 155, 13, 278, 424, 122, 27205, 603}
	cat := &testsupport.StubCatalog{Missing: map[int64]bool{550: true, 424: true}}
	st := testsupport.NewFileStore(t)
	lib := openLibrary(t, st, cat, library.Options{DefaultIDs: ids, BootstrapOnEmpty: true})

	ran, err := lib.EnsureBootstrapped(ctx)
	if err != nil || !ran {
		t.Fatalf("EnsureBootstrapped: ran=%v err=%v", ran, err)
	}
	got := lib.Movies()
	want := []int64{680, 238, 155, 13, 278, 122, 27205, 603}
	if len(got) != len(want) {
		t.Fatalf("expected %d movies, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %d want %d", i, got[i].ID, id)
		}
	}

	ran, err = lib.EnsureBootstrapped(ctx)
	if err != nil || ran {
		t.Fatalf("second EnsureBootstrapped should be a no-op: ran=%v err=%v", ran, err)
	}

	if _, err := lib.Rate(ctx, 680, 3); err != nil {
		t.Fatal(err)
	}
	n, err := lib.Bootstrap(ctx)
	if err != nil || n != 8 {
		t.Fatalf("Bootstrap: n=%d err=%v", n, err)
	}
	if m, _ := lib.Get(680); m.Rating != nil {
		t.Fatal("reset should discard user ratings")
	}

	reopened := openLibrary(t, st, cat, library.Options{})
	if reopened.Len() != 8 {
		t.Fatalf("expected bootstrap persisted, got %d", reopened.Len())
	}
}

func TestBootstrapDoesNotBlockReadsWhileFetching(t *testing.T) {
	ctx := context.Background()
	cat := &testsupport.StubCatalog{}
	lib := openLibrary(t, testsupport.NewFileStore(t), cat, library.Options{DefaultIDs: []int64{680, 238}})
	if _, err := lib.Add(ctx, 13); err != nil {
		t.Fatal(err)
	}

	cat.Gate = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := lib.Bootstrap(ctx)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for cat.Fetches() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("bootstrap fetch never started")
		}
		time.Sleep(time.Millisecond)
	}

	read := make(chan int, 1)
	go func() { read <- len(lib.Movies()) }()
	select {
	case n := <-read:
		if n != 1 {
			t.Fatalf("expected the old collection during the fetch, got %d movies", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reads blocked while bootstrap was fetching")
	}

	close(cat.Gate)
	if err := <-done; err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	got := lib.Movies()
	if len(got) != 2 || got[0].ID != 680 || got[1].ID != 238 {
		t.Fatalf("unexpected collection after bootstrap: %+v", got)
	}
}

func TestEnsureBootstrappedDisabled(t *testing.T) {
	lib := openLibrary(t, testsupport.NewFileStore(t), &testsupport.StubCatalog{}, library.Options{DefaultIDs: []int64{680}})
	ran, err := lib.EnsureBootstrapped(context.Background())
	if err != nil || ran || lib.Len() != 0 {
		t.Fatalf("expected no bootstrap: ran=%v err=%v len=%d", ran, err, lib.Len())
	}
}

func TestFiltersAndClear(t *testing.T) {
	ctx := context.Background()
	st := testsupport.NewFileStore(t)
	cat := &testsupport.StubCatalog{Results: []tmdb.SearchResult{{ID: 680, Title: "Pulp Fiction"}}}
	lib := openLibrary(t, st, cat, library.Options{})
	for _, id := range []int64{1, 2, 3} {
		if _, err := lib.Add(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if got := lib.ByDirector("Director 1"); len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected director filter: %+v", got)
	}
	if got := lib.ByGenre("Dram"); len(got) != 3 {
		t.Fatalf("expected substring genre match, got %d", len(got))
	}
	if got := lib.Search(ctx, "pulp"); len(got) != 1 {
		t.Fatalf("expected search delegation, got %+v", got)
	}

	if err := lib.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 0 {
		t.Fatal("expected empty collection after clear")
	}
	if reopened := openLibrary(t, st, &testsupport.StubCatalog{}, library.Options{}); reopened.Len() != 0 {
		t.Fatalf("expected clear persisted, got %d", reopened.Len())
	}
}

func TestConcurrentAddsDoNotDuplicate(t *testing.T) {
	ctx := context.Background()
	lib := openLibrary(t, testsupport.NewFileStore(t), &testsupport.StubCatalog{}, library.Options{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = lib.Add(ctx, 680)
		}()
	}
	wg.Wait()
	if lib.Len() != 1 {
		t.Fatalf("expected exactly one copy of 680, got %d", lib.Len())
	}
}

func TestPersistenceAcrossBackends(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendFile, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testsupport.NewConfig(t, testsupport.WithBackend(backend), testsupport.WithDefaultIDs(680, 13, 238))
			cat := &testsupport.StubCatalog{Missing: map[int64]bool{13: true}}
			st := testsupport.MustOpenStore(t, cfg)

			lib := openLibrary(t, st, cat, library.Options{
				DefaultIDs:       cfg.Collection.DefaultIDs,
				BootstrapOnEmpty: cfg.Collection.BootstrapOnEmpty,
			})
			ran, err := lib.EnsureBootstrapped(ctx)
			if err != nil || !ran {
				t.Fatalf("EnsureBootstrapped: ran=%v err=%v", ran, err)
			}
			if _, err := lib.Rate(ctx, 238, 7); err != nil {
				t.Fatalf("Rate: %v", err)
			}

			reopened := openLibrary(t, st, cat, library.Options{})
			var ids []int64
			for _, m := range reopened.Movies() {
				ids = append(ids, m.ID)
			}
			if !slices.Equal(ids, []int64{680, 238}) {
				t.Fatalf("unexpected persisted ids: %v", ids)
			}
			if m, _ := reopened.Get(238); movie.DisplayRating(m) != "7/10" {
				t.Fatalf("expected persisted rating, got %q", movie.DisplayRating(m))
			}
		})
	}
}
