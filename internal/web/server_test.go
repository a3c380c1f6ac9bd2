package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/library"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/testsupport"
)

func newStubCatalog() *testsupport.StubCatalog {
	return &testsupport.StubCatalog{
		Results: []tmdb.SearchResult{
			{ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10"},
			{ID: 500, Title: "Reservoir Dogs", ReleaseDate: "1992-09-02"},
		},
		Missing:  map[int64]bool{404: true},
		Director: func(int64) string { return "Quentin Tarantino" },
		Genres:   "Crime, Thriller",
	}
}

func newTestServer(t *testing.T, ids ...int64) (*Server, *library.Library) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lib, err := library.Open(context.Background(), testsupport.NewFileStore(t), newStubCatalog(), library.Options{
		DefaultIDs: []int64{680, 404, 238},
		Logger:     logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	for _, id := range ids {
		if _, err := lib.Add(context.Background(), id); err != nil {
			t.Fatalf("seed %d: %v", id, err)
		}
	}
	srv, err := New(lib, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, lib
}

func post(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	return loc.Query().Get("flash")
}

func TestIndexRendersStarControl(t *testing.T) {
	srv, lib := newTestServer(t, 680)
	if _, err := lib.Rate(context.Background(), 680, 7); err != nil {
		t.Fatal(err)
	}

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Movie 680") {
		t.Fatal("expected movie title in page")
	}
	if got := strings.Count(body, `name="rating"`); got != ratingPositions {
		t.Fatalf("expected %d rating positions, got %d", ratingPositions, got)
	}
	if !strings.Contains(body, "7/10") || strings.Contains(body, ">8.4<") {
		t.Fatal("expected the user rating to be displayed instead of the vote average")
	}
	if strings.Count(body, "width: 100%") != 7 {
		t.Fatalf("expected seven full stars, got %d", strings.Count(body, "width: 100%"))
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestIndexFilters(t *testing.T) {
	srv, _ := newTestServer(t, 680, 238)
	rec := get(t, srv, "/?genre=Thrill")
	if !strings.Contains(rec.Body.String(), "2 of 2 movies") {
		t.Fatalf("expected genre substring match, body: %s", rec.Body.String())
	}
	rec = get(t, srv, "/?director=Quentin")
	if !strings.Contains(rec.Body.String(), "0 of 2 movies") {
		t.Fatal("director filter must be exact")
	}
}

func TestIndexCombinesDirectorAndGenre(t *testing.T) {
	srv, lib := newTestServer(t, 680, 238)
	drama := "Drama"
	if _, err := lib.Update(context.Background(), 238, movie.Patch{Genres: &drama}); err != nil {
		t.Fatal(err)
	}

	body := get(t, srv, "/?"+url.Values{"director": {"Quentin Tarantino"}, "genre": {"Drama"}}.Encode()).Body.String()
	if !strings.Contains(body, "1 of 2 movies") {
		t.Fatalf("expected both filters to apply, body: %s", body)
	}
	if !strings.Contains(body, "Movie 238") || strings.Contains(body, "Movie 680") {
		t.Fatal("expected only the drama to match both filters")
	}
}

func TestAddMovieFlows(t *testing.T) {
	srv, lib := newTestServer(t, 680)

	if flash := flashOf(t, post(t, srv, "/movies", url.Values{"id": {"680"}})); !strings.Contains(flash, "already in your collection") {
		t.Fatalf("unexpected duplicate flash %q", flash)
	}
	if lib.Len() != 1 {
		t.Fatalf("duplicate must not mutate, len=%d", lib.Len())
	}
	if flash := flashOf(t, post(t, srv, "/movies", url.Values{"id": {"404"}})); !strings.Contains(flash, "could not be fetched") {
		t.Fatalf("unexpected unavailable flash %q", flash)
	}
	if flash := flashOf(t, post(t, srv, "/movies", url.Values{"id": {"abc"}})); !strings.Contains(flash, "numeric") {
		t.Fatalf("unexpected bad id flash %q", flash)
	}
	if flash := flashOf(t, post(t, srv, "/movies", url.Values{"id": {"238"}})); flash != "Added Movie 238." {
		t.Fatalf("unexpected add flash %q", flash)
	}
	if lib.Len() != 2 {
		t.Fatalf("expected 2 movies, got %d", lib.Len())
	}
}

func TestRateMovie(t *testing.T) {
	srv, lib := newTestServer(t, 680)

	if flash := flashOf(t, post(t, srv, "/movies/680/rating", url.Values{"rating": {"9"}})); flash != "Rated 9/10." {
		t.Fatalf("unexpected flash %q", flash)
	}
	if m, _ := lib.Get(680); m.Rating == nil || *m.Rating != 9 {
		t.Fatalf("expected rating 9, got %+v", m.Rating)
	}
	if flash := flashOf(t, post(t, srv, "/movies/680/rating", url.Values{"rating": {"11"}})); flash != "Rating must be at most 10." {
		t.Fatalf("unexpected validation flash %q", flash)
	}
	if flash := flashOf(t, post(t, srv, "/movies/1/rating", url.Values{"rating": {"5"}})); !strings.Contains(flash, "not in your collection") {
		t.Fatalf("unexpected unknown id flash %q", flash)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	srv, lib := newTestServer(t, 680)

	flash := flashOf(t, post(t, srv, "/movies/680", url.Values{"title": {"Pulp"}, "year": {"1994"}, "director": {""}}))
	if flash != "Movie updated." {
		t.Fatalf("unexpected flash %q", flash)
	}
	m, _ := lib.Get(680)
	if m.Title != "Pulp" || m.Year == nil || *m.Year != 1994 || m.Director != "Quentin Tarantino" {
		t.Fatalf("unexpected update result %+v", m)
	}
	if flash := flashOf(t, post(t, srv, "/movies/680", url.Values{"year": {"soon"}})); !strings.Contains(flash, "whole number") {
		t.Fatalf("unexpected parse flash %q", flash)
	}

	if flash := flashOf(t, post(t, srv, "/movies/680/delete", nil)); flash != "Movie deleted." {
		t.Fatalf("unexpected delete flash %q", flash)
	}
	if lib.Len() != 0 {
		t.Fatal("expected empty collection")
	}
}

func TestResetAndClear(t *testing.T) {
	srv, lib := newTestServer(t, 13)

	if flash := flashOf(t, post(t, srv, "/reset", nil)); flash != "Collection reset with 2 movies." {
		t.Fatalf("unexpected reset flash %q", flash)
	}
	got := lib.Movies()
	if len(got) != 2 || got[0].ID != 680 || got[1].ID != 238 {
		t.Fatalf("unexpected reset collection %+v", got)
	}
	if flash := flashOf(t, post(t, srv, "/clear", nil)); flash != "Collection cleared." {
		t.Fatalf("unexpected clear flash %q", flash)
	}
	if lib.Len() != 0 {
		t.Fatal("expected empty collection")
	}
}

func TestSearchPage(t *testing.T) {
	srv, _ := newTestServer(t, 680)
	body := get(t, srv, "/search?q=tarantino").Body.String()
	if !strings.Contains(body, "Reservoir Dogs") || !strings.Contains(body, "(1992)") {
		t.Fatal("expected search results")
	}
	if !strings.Contains(body, "in collection") {
		t.Fatal("expected present marker for 680")
	}
	if strings.Count(body, `name="id" value=`) != 1 {
		t.Fatal("expected a single add button for the missing movie")
	}
	if body := get(t, srv, "/search?q=none").Body.String(); !strings.Contains(body, "No results") {
		t.Fatal("expected empty results message")
	}
}

func TestAPIMoviesAndGzip(t *testing.T) {
	srv, _ := newTestServer(t, 680, 238)

	rec := get(t, srv, "/api/movies")
	var movies []movie.Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &movies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(movies) != 2 || movies[0].ID != 680 {
		t.Fatalf("unexpected api payload %+v", movies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	gz := httptest.NewRecorder()
	srv.Handler().ServeHTTP(gz, req)
	if gz.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, headers %v", gz.Header())
	}
}
