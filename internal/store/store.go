// Package store persists synthesized notes in a Badger database so export
// artifacts stay retrievable after the processing request completes.
package store

import (
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/logger"
)

// Store wraps a Badger database instance.
type Store struct {
	db  *badger.DB
	log *logger.Logger
}

// New opens the database at path.
func New(path string, log *logger.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Sync writes to survive crashes

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	log.Info("database opened", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	s.log.Info("closing database")
	return s.db.Close()
}

// get retrieves a JSON value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a JSON value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// mapNotFound converts Badger's key-not-found into a coded domain error.
func mapNotFound(err error, format string, args ...any) error {
	if domainerrors.Is(err, badger.ErrKeyNotFound) {
		return domainerrors.NotFoundf(format, args...)
	}
	return err
}
