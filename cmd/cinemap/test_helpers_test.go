package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/movie"
)

type fakeTMDB struct {
	server   *httptest.Server
	requests atomic.Int64
}

type fakeEntry struct {
	details  tmdb.Details
	director string
}

var fakeMovies = map[int64]fakeEntry{
	680: {
		details: tmdb.Details{
			ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10", PosterPath: "/pulp.jpg",
			Genres: []tmdb.Genre{{ID: 53, Name: "Thriller"}, {ID: 80, Name: "Crime"}}, Runtime: 154, VoteAverage: 8.4,
		},
		director: "Quentin Tarantino",
	},
	238: {
		details: tmdb.Details{
			ID: 238, Title: "The Godfather", ReleaseDate: "1972-03-14",
			Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 80, Name: "Crime"}}, Runtime: 175, VoteAverage: 8.7,
		},
		director: "Francis Ford Coppola",
	},
	603: {
		details: tmdb.Details{
			ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30",
			Genres: []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}, Runtime: 136, VoteAverage: 8.2,
		},
		director: "Lana Wachowski",
	},
}

func newFakeTMDB(t *testing.T) *fakeTMDB {
	t.Helper()
	f := &fakeTMDB{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/movie", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		query := strings.ToLower(r.URL.Query().Get("query"))
		resp := tmdb.SearchResponse{Page: 1, Results: []tmdb.SearchResult{}}
		for _, id := range []int64{680, 238, 603} {
			d := fakeMovies[id].details
			if strings.Contains(strings.ToLower(d.Title), query) {
				resp.Results = append(resp.Results, tmdb.SearchResult{ID: d.ID, Title: d.Title, ReleaseDate: d.ReleaseDate, VoteAverage: d.VoteAverage})
			}
		}
		resp.TotalResults = len(resp.Results)
		writeFakeJSON(w, resp)
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		entry, ok := lookupFake(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeFakeJSON(w, entry.details)
	})
	mux.HandleFunc("GET /movie/{id}/credits", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		entry, ok := lookupFake(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeFakeJSON(w, tmdb.Credits{
			ID:   entry.details.ID,
			Crew: []tmdb.CrewMember{{Name: "Someone Else", Job: "Producer"}, {Name: entry.director, Job: "Director"}},
		})
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func lookupFake(r *http.Request) (fakeEntry, bool) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	entry, ok := fakeMovies[id]
	return entry, ok
}

func writeFakeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type cliTestEnv struct {
	configPath string
	dataPath   string
	tmdb       *fakeTMDB
}

// setupCLITestEnv writes a config pointing at a fake TMDB server and a file
// backed store. An empty token leaves the catalog unconfigured.
func setupCLITestEnv(t *testing.T, token string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	t.Setenv("TMDB_ACCESS_TOKEN", "")

	fake := newFakeTMDB(t)
	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		dataPath:   filepath.Join(base, "data", "collection.json"),
		tmdb:       fake,
	}
	content := fmt.Sprintf(`[tmdb]
access_token = %q
base_url = %q
max_retries = 0

[storage]
backend = "file"
path = %q

[collection]
default_ids = [680, 999, 238]
bootstrap_on_empty = true

[logging]
level = "error"
`, token, fake.server.URL, env.dataPath)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (env *cliTestEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	full := append([]string{"--config", env.configPath, "--env-file="}, args...)
	return runCLI(t, stdin, full...)
}

func (env *cliTestEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := env.run(t, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v\nstdout: %s\nstderr: %s", args, err, out, stderr)
	}
	return out
}

func (env *cliTestEnv) listJSON(t *testing.T) []movie.Movie {
	t.Helper()
	out := env.mustRun(t, "list", "--json")
	var movies []movie.Movie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return movies
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

func requireNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\n%s", needle, haystack)
	}
}

func movieIDs(movies []movie.Movie) []int64 {
	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}
