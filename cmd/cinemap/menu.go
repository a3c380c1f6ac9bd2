package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cinemap/internal/library"
	"cinemap/internal/movie"
	"cinemap/internal/services"
)

// Action is one entry of the interactive menu.
type Action int

const (
	ActionReset Action = iota
	ActionList
	ActionAdd
	ActionUpdate
	ActionRate
	ActionDelete
	ActionClear
	ActionDirector
	ActionGenre
	ActionExit
)

// menuActions is the display order of the menu.
var menuActions = []Action{
	ActionReset,
	ActionList,
	ActionAdd,
	ActionUpdate,
	ActionRate,
	ActionDelete,
	ActionClear,
	ActionDirector,
	ActionGenre,
	ActionExit,
}

// Key is the short name accepted at the prompt in place of the number.
func (a Action) Key() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionList:
		return "list"
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionRate:
		return "rate"
	case ActionDelete:
		return "delete"
	case ActionClear:
		return "clear"
	case ActionDirector:
		return "director"
	case ActionGenre:
		return "genre"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

func (a Action) String() string {
	switch a {
	case ActionReset:
		return "Reset to default movies"
	case ActionList:
		return "List all movies"
	case ActionAdd:
		return "Add a movie by search"
	case ActionUpdate:
		return "Update a movie"
	case ActionRate:
		return "Rate a movie"
	case ActionDelete:
		return "Delete a movie"
	case ActionClear:
		return "Clear the collection"
	case ActionDirector:
		return "List movies by director"
	case ActionGenre:
		return "List movies by genre"
	case ActionExit:
		return "Exit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// parseAction accepts a 1-based menu position or an action key.
func parseAction(input string) (Action, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(menuActions) {
			return 0, false
		}
		return menuActions[n-1], true
	}
	if input == "q" || input == "quit" {
		return ActionExit, true
	}
	for _, a := range menuActions {
		if a.Key() == input {
			return a, true
		}
	}
	return 0, false
}

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Manage the collection through an interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context(), true)
			if err != nil {
				return err
			}
			m := &menu{
				lib: lib,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: newActionOutput(cmd.OutOrStdout()),
			}
			return m.run(cmd.Context())
		},
	}
}

type menu struct {
	lib *library.Library
	in  *bufio.Scanner
	out actionOutput
}

func (m *menu) run(ctx context.Context) error {
	ran, err := m.lib.EnsureBootstrapped(ctx)
	if err != nil {
		return err
	}
	if ran {
		m.out.status(statusInfo, "Collection was empty; loaded %d default movies", m.lib.Len())
	}

	for {
		m.printMenu()
		choice, ok := m.prompt("Choose an action")
		if !ok {
			return nil
		}
		action, valid := parseAction(choice)
		if !valid {
			m.out.status(statusWarn, "Unknown choice %q", choice)
			continue
		}
		done, err := m.dispatch(ctx, action)
		if err != nil {
			if !services.IsUserError(err) {
				return err
			}
			m.out.status(statusWarn, "%v", err)
		}
		if done {
			return nil
		}
	}
}

// dispatch runs one action and reports whether the menu should stop.
func (m *menu) dispatch(ctx context.Context, action Action) (bool, error) {
	switch action {
	case ActionReset:
		return false, runReset(ctx, m.lib, m.out)
	case ActionList:
		m.out.movies(m.lib.Movies(), "Collection is empty")
		return false, nil
	case ActionAdd:
		return false, m.addBySearch(ctx)
	case ActionUpdate:
		return false, m.update(ctx)
	case ActionRate:
		return false, m.rate(ctx)
	case ActionDelete:
		id, ok, err := m.promptID()
		if !ok || err != nil {
			return false, err
		}
		return false, runDelete(ctx, m.lib, m.out, id)
	case ActionClear:
		return false, runClear(ctx, m.lib, m.out)
	case ActionDirector:
		name, ok := m.prompt("Director")
		if !ok || name == "" {
			return false, nil
		}
		m.out.movies(m.lib.ByDirector(name), fmt.Sprintf("No movies directed by %s", name))
		return false, nil
	case ActionGenre:
		name, ok := m.prompt("Genre")
		if !ok || name == "" {
			return false, nil
		}
		m.out.movies(m.lib.ByGenre(name), fmt.Sprintf("No movies in genre %s", name))
		return false, nil
	case ActionExit:
		return true, nil
	default:
		return false, fmt.Errorf("unhandled menu action %v", action)
	}
}

func (m *menu) addBySearch(ctx context.Context) error {
	query, ok := m.prompt("Search title")
	if !ok || query == "" {
		return nil
	}
	results := m.lib.Search(ctx, query)
	if len(results) == 0 {
		m.out.status(statusInfo, "No results for %q", query)
		return nil
	}
	fmt.Fprintln(m.out.w, renderSearchTable(results))
	raw, ok := m.prompt("Result number to add (blank to cancel)")
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(results) {
		return services.Wrap(services.ErrValidation, "", "", fmt.Sprintf("choose a result between 1 and %d", len(results)), nil)
	}
	return runAdd(ctx, m.lib, m.out, results[n-1].ID)
}

func (m *menu) update(ctx context.Context) error {
	id, ok, err := m.promptID()
	if !ok || err != nil {
		return err
	}
	current, found := m.lib.Get(id)
	if !found {
		reportFound(m.out, id, false, "")
		return nil
	}

	var patch movie.Patch
	if v, ok := m.prompt(fmt.Sprintf("Title [%s]", current.Title)); ok && v != "" {
		patch.Title = &v
	}
	if v, ok := m.prompt(fmt.Sprintf("Director [%s]", current.Director)); ok && v != "" {
		patch.Director = &v
	}
	if v, ok := m.prompt(fmt.Sprintf("Year [%s]", formatYear(current.Year))); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return services.Wrap(services.ErrValidation, "", "", "year must be a number", nil)
		}
		patch.Year = &year
	}
	if v, ok := m.prompt(fmt.Sprintf("Genres [%s]", current.Genres)); ok && v != "" {
		patch.Genres = &v
	}
	return runUpdate(ctx, m.lib, m.out, id, patch)
}

func (m *menu) rate(ctx context.Context) error {
	id, ok, err := m.promptID()
	if !ok || err != nil {
		return err
	}
	raw, ok := m.prompt(fmt.Sprintf("Rating (1-%d)", starSegments))
	if !ok || raw == "" {
		return nil
	}
	rating, err := parseRating(raw)
	if err != nil {
		return err
	}
	return runRate(ctx, m.lib, m.out, id, rating)
}

func (m *menu) promptID() (int64, bool, error) {
	raw, ok := m.prompt("Movie id")
	if !ok || raw == "" {
		return 0, false, nil
	}
	id, err := parseMovieID(raw)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// prompt reads one trimmed line. ok is false once input is exhausted.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprintf(m.out.w, "%s: ", label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out.w)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out.w)
	for i, a := range menuActions {
		fmt.Fprintf(m.out.w, "%2d) %-26s [%s]\n", i+1, a, a.Key())
	}
}
