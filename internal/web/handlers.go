package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cinemap/internal/library"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
	"cinemap/internal/services"
)

func (s *Server) index(c *gin.Context) {
	director := strings.TrimSpace(c.Query("director"))
	genre := strings.TrimSpace(c.Query("genre"))

	list := s.lib.Movies()
	if director != "" {
		list = movie.ByDirector(list, director)
	}
	if genre != "" {
		list = movie.ByGenre(list, genre)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Movies":   newMovieViews(list),
		"Total":    s.lib.Len(),
		"Director": director,
		"Genre":    genre,
		"Query":    "",
		"Flash":    c.Query("flash"),
	})
}

func (s *Server) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	data := gin.H{"Query": query, "Flash": c.Query("flash")}
	if query != "" {
		results := s.lib.Search(c.Request.Context(), query)
		data["Results"] = newSearchViews(results, func(id int64) bool {
			_, ok := s.lib.Get(id)
			return ok
		})
		if len(results) == 0 {
			data["Flash"] = fmt.Sprintf("No results for %q.", query)
		}
	}
	c.HTML(http.StatusOK, "search.html", data)
}

func (s *Server) addMovie(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("id")), 10, 64)
	if err != nil || id <= 0 {
		s.redirect(c, "/", "Enter a numeric TMDB id.")
		return
	}
	added, err := s.lib.Add(c.Request.Context(), id)
	switch {
	case errors.Is(err, library.ErrDuplicate):
		s.redirect(c, "/", fmt.Sprintf("Movie %d is already in your collection.", id))
	case errors.Is(err, library.ErrUnavailable):
		s.redirect(c, "/", fmt.Sprintf("Movie %d could not be fetched from TMDB.", id))
	case err != nil:
		s.fail(c, "add movie", err)
	default:
		s.redirect(c, "/", fmt.Sprintf("Added %s.", added.Title))
	}
}

func (s *Server) rateMovie(c *gin.Context) {
	id, ok := s.movieID(c)
	if !ok {
		return
	}
	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil {
		s.redirect(c, "/", "Pick a rating between 1 and 10.")
		return
	}
	found, err := s.lib.Rate(c.Request.Context(), id, rating)
	s.afterMutation(c, "rate movie", found, err, fmt.Sprintf("Rated %d/10.", rating))
}

func (s *Server) updateMovie(c *gin.Context) {
	id, ok := s.movieID(c)
	if !ok {
		return
	}
	patch, err := patchFromForm(c)
	if err != nil {
		s.redirect(c, "/", err.Error())
		return
	}
	if patch.Empty() {
		s.redirect(c, "/", "Nothing to update.")
		return
	}
	found, err := s.lib.Update(c.Request.Context(), id, patch)
	s.afterMutation(c, "update movie", found, err, "Movie updated.")
}

func (s *Server) deleteMovie(c *gin.Context) {
	id, ok := s.movieID(c)
	if !ok {
		return
	}
	found, err := s.lib.Delete(c.Request.Context(), id)
	s.afterMutation(c, "delete movie", found, err, "Movie deleted.")
}

func (s *Server) reset(c *gin.Context) {
	n, err := s.lib.Bootstrap(c.Request.Context())
	if err != nil {
		s.fail(c, "reset collection", err)
		return
	}
	s.redirect(c, "/", fmt.Sprintf("Collection reset with %d movies.", n))
}

func (s *Server) clear(c *gin.Context) {
	if err := s.lib.Clear(c.Request.Context()); err != nil {
		s.fail(c, "clear collection", err)
		return
	}
	s.redirect(c, "/", "Collection cleared.")
}

func (s *Server) listMovies(c *gin.Context) {
	c.JSON(http.StatusOK, s.lib.Movies())
}

func (s *Server) movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.redirect(c, "/", "Unknown movie id.")
		return 0, false
	}
	return id, true
}

func (s *Server) afterMutation(c *gin.Context, operation string, found bool, err error, success string) {
	switch {
	case err != nil && services.IsUserError(err):
		s.redirect(c, "/", userMessage(err))
	case err != nil:
		s.fail(c, operation, err)
	case !found:
		s.redirect(c, "/", "That movie is not in your collection.")
	default:
		s.redirect(c, "/", success)
	}
}

func (s *Server) redirect(c *gin.Context, path, flash string) {
	target := path
	if flash != "" {
		target += "?" + url.Values{"flash": {flash}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) fail(c *gin.Context, operation string, err error) {
	logging.ErrorWithContext(logging.WithContext(c.Request.Context(), s.logger), operation+" failed",
		"web_request_failed",
		logging.String(logging.FieldOperation, operation),
		logging.Error(err),
	)
	c.String(http.StatusInternalServerError, "%s failed: %v", operation, err)
}

// userMessage strips the marker prefix from validation errors.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func patchFromForm(c *gin.Context) (movie.Patch, error) {
	var patch movie.Patch
	text := func(field string) *string {
		v, ok := c.GetPostForm(field)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		v = strings.TrimSpace(v)
		return &v
	}
	number := func(field string) (*int, error) {
		v := text(field)
		if v == nil {
			return nil, nil
		}
		n, err := strconv.Atoi(*v)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", field)
		}
		return &n, nil
	}

	patch.Title = text("title")
	patch.Director = text("director")
	patch.Overview = text("overview")
	patch.Genres = text("genres")
	var err error
	if patch.Year, err = number("year"); err != nil {
		return movie.Patch{}, err
	}
	if patch.Runtime, err = number("runtime"); err != nil {
		return movie.Patch{}, err
	}
	if patch.Rating, err = number("rating"); err != nil {
		return movie.Patch{}, err
	}
	return patch, nil
}
