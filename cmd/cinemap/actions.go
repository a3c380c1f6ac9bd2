package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cinemap/internal/library"
	"cinemap/internal/movie"
	"cinemap/internal/services"
)

// actionOutput carries the writer and colour decision shared by subcommands
// and the interactive menu.
type actionOutput struct {
	w        io.Writer
	colorize bool
}

func newActionOutput(w io.Writer) actionOutput {
	return actionOutput{w: w, colorize: shouldColorize(w)}
}

func (o actionOutput) status(kind statusKind, format string, args ...any) {
	fmt.Fprintln(o.w, renderStatusLine(kind, fmt.Sprintf(format, args...), o.colorize))
}

func (o actionOutput) movies(list []movie.Movie, empty string) {
	if len(list) == 0 {
		o.status(statusInfo, "%s", empty)
		return
	}
	fmt.Fprintln(o.w, renderMovieTable(list, o.colorize))
}

func runReset(ctx context.Context, lib *library.Library, out actionOutput) error {
	count, err := lib.Bootstrap(ctx)
	if err != nil {
		return err
	}
	out.status(statusOK, "Collection reset with %d default movies", count)
	return nil
}

func runSearch(ctx context.Context, lib *library.Library, out actionOutput, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		out.status(statusWarn, "Search query is empty")
		return nil
	}
	results := lib.Search(ctx, query)
	if len(results) == 0 {
		out.status(statusInfo, "No results for %q", query)
		return nil
	}
	fmt.Fprintln(out.w, renderSearchTable(results))
	return nil
}

// runAdd reports duplicates and catalog misses as warnings; neither changes
// the collection.
func runAdd(ctx context.Context, lib *library.Library, out actionOutput, id int64) error {
	added, err := lib.Add(ctx, id)
	switch {
	case errors.Is(err, library.ErrDuplicate):
		out.status(statusWarn, "Movie %d is already in the collection", id)
		return nil
	case errors.Is(err, library.ErrUnavailable):
		out.status(statusWarn, "Movie %d could not be fetched from TMDB", id)
		return nil
	case err != nil:
		return err
	}
	out.status(statusOK, "Added %s (%s)", added.Title, formatYear(added.Year))
	return nil
}

func runUpdate(ctx context.Context, lib *library.Library, out actionOutput, id int64, patch movie.Patch) error {
	if patch.Empty() {
		out.status(statusWarn, "Nothing to update")
		return nil
	}
	found, err := lib.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	reportFound(out, id, found, "Updated movie %d")
	return nil
}

func runRate(ctx context.Context, lib *library.Library, out actionOutput, id int64, rating int) error {
	found, err := lib.Rate(ctx, id, rating)
	if err != nil {
		return err
	}
	if found {
		m, _ := lib.Get(id)
		out.status(statusOK, "Rated %s %s %s", m.Title, renderStars(m, out.colorize), movie.DisplayRating(m))
		return nil
	}
	reportFound(out, id, false, "")
	return nil
}

func runDelete(ctx context.Context, lib *library.Library, out actionOutput, id int64) error {
	found, err := lib.Delete(ctx, id)
	if err != nil {
		return err
	}
	reportFound(out, id, found, "Deleted movie %d")
	return nil
}

func runClear(ctx context.Context, lib *library.Library, out actionOutput) error {
	if err := lib.Clear(ctx); err != nil {
		return err
	}
	out.status(statusOK, "Collection cleared")
	return nil
}

func reportFound(out actionOutput, id int64, found bool, okFormat string) {
	if !found {
		out.status(statusWarn, "Movie %d is not in the collection", id)
		return
	}
	out.status(statusOK, okFormat, id)
}

func parseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.Wrap(services.ErrValidation, "", "", fmt.Sprintf("invalid movie id %q: must be a positive integer", raw), nil)
	}
	return id, nil
}

func parseRating(raw string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "", "", fmt.Sprintf("invalid rating %q: must be an integer from 1 to %d", raw, movie.MaxScore), nil)
	}
	if err := movie.ValidateRating(rating); err != nil {
		return 0, err
	}
	return rating, nil
}
