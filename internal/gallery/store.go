package gallery

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/gallery/internal/model"
)

// Source fetches the full current item list from the service.
type Source interface {
	ListItems(ctx context.Context) ([]model.Item, error)
}

// Store holds the ordered item sequence. The service is the source of truth;
// local moves last until the next load.
type Store struct {
	src    Source
	items  []model.Item
	loaded bool
}

func NewStore(src Source) *Store {
	return &Store{src: src}
}

// Load fetches the sequence and replaces the local one wholesale.
// On failure the previous sequence is kept.
func (s *Store) Load(ctx context.Context) ([]model.Item, error) {
	items, err := s.src.ListItems(ctx)
	if err != nil {
		return s.Items(), fmt.Errorf("load items: %w", err)
	}
	if err := s.Replace(items); err != nil {
		return s.Items(), fmt.Errorf("load items: %w", err)
	}
	return s.Items(), nil
}

func (s *Store) Refresh(ctx context.Context) ([]model.Item, error) {
	return s.Load(ctx)
}

// Replace installs an already fetched payload.
func (s *Store) Replace(items []model.Item) error {
	if err := model.ValidateSequence(items); err != nil {
		return err
	}
	s.items = append([]model.Item(nil), items...)
	s.loaded = true
	return nil
}

// Loaded reports whether at least one load succeeded.
func (s *Store) Loaded() bool { return s.loaded }

func (s *Store) Items() []model.Item {
	return append([]model.Item(nil), s.items...)
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) At(i int) (model.Item, bool) {
	if i < 0 || i >= len(s.items) {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Index returns the position of id, or -1.
func (s *Store) Index(id model.ID) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Has(id model.ID) bool { return s.Index(id) >= 0 }

// Move reorders the local sequence. Nothing is sent to the service.
func (s *Store) Move(from, to int) error {
	out, err := MoveItem(s.items, from, to)
	if err != nil {
		return err
	}
	s.items = out
	return nil
}

// Source returns the service the store loads from.
func (s *Store) Source() Source { return s.src }
