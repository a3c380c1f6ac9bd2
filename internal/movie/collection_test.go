package movie_test

import (
	"errors"
	"reflect"
	"testing"

	"cinemap/internal/movie"
	"cinemap/internal/services"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }

func sample() []movie.Movie {
	return []movie.Movie{
		{ID: 680, Title: "Pulp Fiction", Director: "Quentin Tarantino", Year: intPtr(1994), Genres: "Thriller, Crime", VoteAverage: floatPtr(8.5)},
		{ID: 238, Title: "The Godfather", Director: "Francis Ford Coppola", Year: intPtr(1972), Genres: "Drama, Crime", VoteAverage: floatPtr(8.7)},
		{ID: 500, Title: "Reservoir Dogs", Director: "Quentin Tarantino", Year: intPtr(1992), Genres: "Crime Thriller"},
		{ID: 13, Title: "Forrest Gump", Director: "Robert Zemeckis", Genres: "Comedy, Drama, Romance"},
	}
}

func ids(list []movie.Movie) []int64 {
	out := make([]int64, len(list))
	for i, m := range list {
		out[i] = m.ID
	}
	return out
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	list := sample()
	got := movie.Update(list, 9999, movie.Patch{Title: stringPtr("x")})
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("expected unchanged list, got %+v", got)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	list := sample()
	got := movie.Delete(list, 9999)
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("expected unchanged list, got %+v", got)
	}
}

func TestDeleteRemovesEveryMatch(t *testing.T) {
	list := append(sample(), movie.Movie{ID: 680, Title: "dup"})
	got := movie.Delete(list, 680)
	if movie.Exists(got, 680) {
		t.Fatal("expected 680 removed")
	}
	if want := []int64{238, 500, 13}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestAddThenExists(t *testing.T) {
	list := sample()
	if movie.Exists(list, 550) {
		t.Fatal("550 should not exist yet")
	}
	got := movie.Add(list, movie.Movie{ID: 550, Title: "Fight Club"})
	if !movie.Exists(got, 550) {
		t.Fatal("expected 550 after add")
	}
	if len(list) != 4 {
		t.Fatalf("input mutated: len=%d", len(list))
	}
	if got[len(got)-1].ID != 550 {
		t.Fatal("expected add to append at the end")
	}
}

func TestUpdateKeepsOrderAndOtherFields(t *testing.T) {
	list := sample()
	got := movie.Update(list, 238, movie.Patch{Title: stringPtr("Il Padrino"), Year: intPtr(1973)})
	if want := []int64{680, 238, 500, 13}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("order changed: %v", ids(got))
	}
	if got[1].Title != "Il Padrino" || *got[1].Year != 1973 {
		t.Fatalf("patch not applied: %+v", got[1])
	}
	if got[1].Director != "Francis Ford Coppola" || *got[1].VoteAverage != 8.7 {
		t.Fatalf("unpatched fields changed: %+v", got[1])
	}
	if list[1].Title != "The Godfather" || *list[1].Year != 1972 {
		t.Fatalf("input mutated: %+v", list[1])
	}
}

func TestRateChangesOnlyRatingAndIsIdempotent(t *testing.T) {
	list := sample()
	once := movie.Rate(list, 680, 7)
	twice := movie.Rate(once, 680, 7)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("rate should be idempotent")
	}
	for i := range list {
		want := list[i]
		if want.ID == 680 {
			want.Rating = intPtr(7)
		}
		if !reflect.DeepEqual(once[i], want) {
			t.Fatalf("element %d: got %+v want %+v", i, once[i], want)
		}
	}
	if list[0].Rating != nil {
		t.Fatal("input mutated")
	}
}

func TestFiltersAreOrderedSubsets(t *testing.T) {
	list := sample()

	byDirector := movie.ByDirector(list, "Quentin Tarantino")
	if want := []int64{680, 500}; !reflect.DeepEqual(ids(byDirector), want) {
		t.Fatalf("unexpected director filter: %v", ids(byDirector))
	}
	if got := movie.ByDirector(list, "quentin tarantino"); len(got) != 0 {
		t.Fatalf("director match should be exact, got %v", ids(got))
	}

	byGenre := movie.ByGenre(list, "Crime")
	if want := []int64{680, 238, 500}; !reflect.DeepEqual(ids(byGenre), want) {
		t.Fatalf("unexpected genre filter: %v", ids(byGenre))
	}
	if got := movie.ByGenre(list, "Rom"); len(got) != 1 || got[0].ID != 13 {
		t.Fatalf("genre match should be substring, got %v", ids(got))
	}
	if got := movie.ByGenre(nil, "Drama"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch movie.Patch
		ok    bool
	}{
		{"empty", movie.Patch{}, true},
		{"rating low", movie.Patch{Rating: intPtr(0)}, false},
		{"rating high", movie.Patch{Rating: intPtr(11)}, false},
		{"rating ok", movie.Patch{Rating: intPtr(10)}, true},
		{"blank title", movie.Patch{Title: stringPtr("  ")}, false},
		{"year", movie.Patch{Year: intPtr(1700)}, false},
		{"vote average", movie.Patch{VoteAverage: floatPtr(10.5)}, false},
		{"runtime", movie.Patch{Runtime: intPtr(-1)}, false},
		{"poster", movie.Patch{PosterURL: stringPtr("not a url")}, false},
		{"full", movie.Patch{Title: stringPtr("Heat"), Director: stringPtr("Michael Mann"), Year: intPtr(1995), Runtime: intPtr(170)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, services.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
			}
		})
	}
}

func TestPatchApplyDoesNotAliasPointers(t *testing.T) {
	rating := 5
	got := movie.Patch{Rating: &rating}.Apply(movie.Movie{ID: 1})
	rating = 9
	if *got.Rating != 5 {
		t.Fatalf("patch pointer aliased into movie: %d", *got.Rating)
	}
}
