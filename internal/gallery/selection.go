package gallery

import "github.com/Makepad-fr/gallery/internal/model"

// Selection is the set of item ids marked for a batch action.
// Members keep the order in which they were selected.
type Selection struct {
	order []model.ID
	index map[model.ID]struct{}
}

func NewSelection() *Selection {
	return &Selection{index: map[model.ID]struct{}{}}
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id model.ID) {
	if s.index == nil {
		s.index = map[model.ID]struct{}{}
	}
	if _, ok := s.index[id]; ok {
		delete(s.index, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) Clear() {
	s.order = nil
	s.index = map[model.ID]struct{}{}
}

func (s *Selection) Contains(id model.ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Selection) Len() int { return len(s.order) }

// IDs returns a snapshot of the members in selection order.
func (s *Selection) IDs() []model.ID {
	out := make([]model.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Retain drops every member for which keep returns false and returns the dropped ids.
func (s *Selection) Retain(keep func(model.ID) bool) []model.ID {
	var dropped []model.ID
	kept := s.order[:0]
	for _, id := range s.order {
		if keep(id) {
			kept = append(kept, id)
			continue
		}
		delete(s.index, id)
		dropped = append(dropped, id)
	}
	s.order = kept
	return dropped
}
