package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCollectionCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newResetCommand(ctx),
		newListCommand(ctx),
		newSearchCommand(ctx),
		newRateCommand(ctx),
		newDeleteCommand(ctx),
		newClearCommand(ctx),
		newDirectorCommand(ctx),
		newGenreCommand(ctx),
	}
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the collection with the default movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), true)
			if err != nil {
				return err
			}
			return runReset(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()))
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every movie in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			movies := lib.Movies()
			if jsonOutput {
				return writeJSON(cmd, movies)
			}
			newActionOutput(cmd.OutOrStdout()).movies(movies, "Collection is empty")
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search TMDB for movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), true)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if jsonOutput {
				return writeJSON(cmd, lib.Search(cmd.Context(), query))
			}
			return runSearch(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()), query)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <rating>",
		Short: fmt.Sprintf("Rate a movie from 1 to %d", starSegments),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			rating, err := parseRating(args[1])
			if err != nil {
				return err
			}
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			return runRate(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()), id, rating)
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			return runDelete(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()), id)
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every movie from the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			return runClear(cmd.Context(), lib, newActionOutput(cmd.OutOrStdout()))
		},
	}
}

func newDirectorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "director <name>",
		Short: "List movies by an exact director name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			movies := lib.ByDirector(name)
			if jsonOutput {
				return writeJSON(cmd, movies)
			}
			newActionOutput(cmd.OutOrStdout()).movies(movies, fmt.Sprintf("No movies directed by %s", name))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newGenreCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "genre <name>",
		Short: "List movies whose genres contain name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), false)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			movies := lib.ByGenre(name)
			if jsonOutput {
				return writeJSON(cmd, movies)
			}
			newActionOutput(cmd.OutOrStdout()).movies(movies, fmt.Sprintf("No movies in genre %s", name))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
