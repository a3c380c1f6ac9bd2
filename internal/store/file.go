package store

import (
	"context"
	"fmt"
	"log/slog"

	"cinemap/internal/fileutil"
	"cinemap/internal/logging"
	"cinemap/internal/movie"
)

// FileStore keeps the collection in one JSON file. The file itself plays the
// role of the fixed key: its absence means nothing is stored.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, found, err := fileutil.ReadFileIfExists(s.path)
	if err != nil {
		return nil, fmt.Errorf("read collection file: %w", err)
	}
	if !found {
		return []movie.Movie{}, nil
	}
	return decode(data, s.logger, "file"), nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(movies)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write collection file: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.RemoveIfExists(s.path); err != nil {
		return fmt.Errorf("remove collection file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
