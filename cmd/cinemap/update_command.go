package main

import (
	"github.com/spf13/cobra"

	"cinemap/internal/movie"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		director    string
		year        int
		overview    string
		posterURL   string
		backdropURL string
		genres      string
		runtime     int
		voteAverage float64
		rating      int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit fields of a movie in the collection",
		Long: `Edit fields of a movie in the collection.

Only flags that are passed are changed. Unknown ids leave the collection
untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch movie.Patch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("director") {
				patch.Director = &director
			}
			if flags.Changed("year") {
				patch.Year = &year
			}
			if flags.Changed("overview") {
				patch.Overview = &overview
			}
			if flags.Changed("poster-url") {
				patch.PosterURL = &posterURL
			}
			if flags.Changed("backdrop-url") {
				patch.BackdropURL = &backdropURL
			}
			if flags.Changed("genres") {
				patch.Genres = &genres
			}
			if flags.Changed("runtime") {
				patch.Runtime = &runtime
			}
			if flags.Changed("vote-average") {
				patch.VoteAverage = &voteAverage
			}
			if flags.Changed("rating") {
				patch.Rating = &rating
			}

			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()), id, patch)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "Movie title")
	flags.StringVar(&director, "director", "", "Director name")
	flags.IntVar(&year, "year", 0, "Release year")
	flags.StringVar(&overview, "overview", "", "Plot overview")
	flags.StringVar(&posterURL, "poster-url", "", "Poster image URL")
	flags.StringVar(&backdropURL, "backdrop-url", "", "Backdrop image URL")
	flags.StringVar(&genres, "genres", "", "Comma separated genres")
	flags.IntVar(&runtime, "runtime", 0, "Runtime in minutes")
	flags.Float64Var(&voteAverage, "vote-average", 0, "TMDB vote average (0-10)")
	flags.IntVar(&rating, "rating", 0, "Personal rating (1-10)")
	return cmd
}
