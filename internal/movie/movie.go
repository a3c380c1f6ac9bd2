package movie

// UnknownDirector is recorded when the catalog has no director credit.
const UnknownDirector = "unknown director"

// NoOverview is recorded when the catalog has no synopsis.
const NoOverview = "No overview available."

// Movie is one entry in the collection.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Director    string   `json:"director"`
	Year        *int     `json:"year,omitempty"`
	Overview    string   `json:"overview"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
	BackdropURL *string  `json:"backdropUrl,omitempty"`
	Genres      string   `json:"genres"`
	Runtime     *int     `json:"runtime,omitempty"`
	VoteAverage *float64 `json:"voteAverage,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
}
