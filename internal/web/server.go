package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"cinemap/internal/library"
	"cinemap/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the web front end over a Library.
type Server struct {
	lib    *library.Library
	logger *slog.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers routes.
func New(lib *library.Library, logger *slog.Logger) (*Server, error) {
	if lib == nil {
		return nil, errors.New("web: library is required")
	}
	logger = logging.NewComponentLogger(logger, "web")

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{lib: lib, logger: logger, engine: engine}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	r := s.engine
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.index)
	r.GET("/search", s.search)
	r.POST("/movies", s.addMovie)
	r.POST("/movies/:id", s.updateMovie)
	r.POST("/movies/:id/rating", s.rateMovie)
	r.POST("/movies/:id/delete", s.deleteMovie)
	r.POST("/reset", s.reset)
	r.POST("/clear", s.clear)

	api := r.Group("/api")
	{
		api.GET("/movies", s.listMovies)
	}
}

// Handler exposes the engine for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on bind until ctx is cancelled.
func (s *Server) Run(ctx context.Context, bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("web listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	s.logger.Info("web ui listening", logging.String("address", "http://"+listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web shutdown: %w", err)
		}
		s.logger.Info("web ui stopped")
		return nil
	}
}
