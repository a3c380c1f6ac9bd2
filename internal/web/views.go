package web

import (
	"fmt"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/movie"
)

// ratingPositions is the number of clickable positions in the star control.
const ratingPositions = 10

type starSegment struct {
	Position int
	Fill     int // percent
	Selected bool
}

type movieView struct {
	movie.Movie
	Display  string
	Stars    []starSegment
	YearText string
	Runtime  string
}

type searchView struct {
	tmdb.SearchResult
	Year    string
	Present bool
}

func newMovieView(m movie.Movie) movieView {
	fills := movie.StarFill(movie.Score(m), ratingPositions)
	stars := make([]starSegment, len(fills))
	for i, f := range fills {
		stars[i] = starSegment{
			Position: i + 1,
			Fill:     int(f*100 + 0.5),
			Selected: m.Rating != nil && *m.Rating == i+1,
		}
	}
	view := movieView{Movie: m, Display: movie.DisplayRating(m), Stars: stars}
	if m.Year != nil {
		view.YearText = fmt.Sprintf("%d", *m.Year)
	}
	if m.Runtime != nil {
		view.Runtime = fmt.Sprintf("%d min", *m.Runtime)
	}
	return view
}

func newMovieViews(list []movie.Movie) []movieView {
	views := make([]movieView, len(list))
	for i, m := range list {
		views[i] = newMovieView(m)
	}
	return views
}

func newSearchViews(results []tmdb.SearchResult, present func(int64) bool) []searchView {
	views := make([]searchView, len(results))
	for i, r := range results {
		year := ""
		if len(r.ReleaseDate) >= 4 {
			year = r.ReleaseDate[:4]
		}
		views[i] = searchView{SearchResult: r, Year: year, Present: present(r.ID)}
	}
	return views
}
