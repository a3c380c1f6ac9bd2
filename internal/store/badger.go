package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"cinemap/internal/logging"
	"cinemap/internal/movie"
)

// BadgerStore keeps the collection under CollectionKey in a BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens a BadgerDB in dir.
func OpenBadger(dir string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return openBadger(opts, logger)
}

// OpenBadgerInMemory opens a BadgerDB that lives only in memory.
func OpenBadgerInMemory(logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), logger)
}

func openBadger(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CollectionKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []movie.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return decode(data, s.logger, "badger"), nil
}

// Save implements Store.
func (s *BadgerStore) Save(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(movies)
	if err != nil {
		return err
	}
	return s.putRaw(data)
}

func (s *BadgerStore) putRaw(data []byte) error {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(CollectionKey), data)
	}); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *BadgerStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(CollectionKey))
	})
	if err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
