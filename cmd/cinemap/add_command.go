package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var query string
	var pick int

	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Add a movie by TMDB id or by search",
		Long: `Add a movie to the collection.

Pass a TMDB movie id, or use --search to look the movie up by title.
With --search the first result is added unless --pick selects another
position from the result list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query = strings.TrimSpace(query)
			if (len(args) == 0) == (query == "") {
				return fmt.Errorf("provide either a movie id or --search")
			}
			if pick < 1 {
				return fmt.Errorf("--pick must be at least 1")
			}

			lib, err := ctx.openLibrary(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := newActionOutput(cmd.OutOrStdout())

			if len(args) == 1 {
				id, err := parseMovieID(args[0])
				if err != nil {
					return err
				}
				return runAdd(cmd.Context(), lib, out, id)
			}

			results := lib.Search(cmd.Context(), query)
			if len(results) == 0 {
				out.status(statusInfo, "No results for %q", query)
				return nil
			}
			if pick > len(results) {
				return fmt.Errorf("--pick %d out of range: search returned %d results", pick, len(results))
			}
			return runAdd(cmd.Context(), lib, out, results[pick-1].ID)
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "Search TMDB by title and add a result")
	cmd.Flags().IntVar(&pick, "pick", 1, "Result position to add when using --search")
	return cmd
}
