package store

import (
	"encoding/json/v2"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/lectioapp/lectio-server/internal/domain"
)

const notePrefix = "note:"

func noteKey(id string) []byte {
	return []byte(notePrefix + id)
}

// SaveNote persists a synthesized note.
func (s *Store) SaveNote(note *domain.Note) error {
	return s.set(noteKey(note.ID), note)
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id string) (*domain.Note, error) {
	var note domain.Note
	if err := s.get(noteKey(id), &note); err != nil {
		return nil, mapNotFound(err, "note %s not found", id)
	}
	return &note, nil
}

// ListNotes returns all persisted notes, newest first.
func (s *Store) ListNotes() ([]*domain.Note, error) {
	var notes []*domain.Note
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(notePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var note domain.Note
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &note)
			})
			if err != nil {
				return err
			}
			notes = append(notes, &note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Iteration order is key order; sort by creation time instead.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
	return notes, nil
}
