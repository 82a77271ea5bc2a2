package model

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ID is the server-assigned identifier of an item.
// The service may send it as a JSON number or string; both keep their text form.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("id: want string or number, got %s", b)
	}
	*id = ID(b)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(id))), nil
}

// Item is one gallery entry. The client never edits these fields,
// only the item's position in the sequence.
type Item struct {
	ID    ID     `json:"id"`
	Img   string `json:"img"`
	Title string `json:"title,omitempty"`
}

// ErrMissingID is returned for an item that arrived without an id.
var ErrMissingID = errors.New("item has no id")

// DuplicateIDError reports two items sharing an id in one payload.
type DuplicateIDError struct {
	ID    ID
	First int
	Again int
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate item id %q at positions %d and %d", e.ID, e.First, e.Again)
}

func (it Item) Validate() error {
	if it.ID == "" {
		return ErrMissingID
	}
	return nil
}

// ValidateSequence checks every item and the uniqueness of ids.
func ValidateSequence(items []Item) error {
	seen := make(map[ID]int, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if j, dup := seen[it.ID]; dup {
			return DuplicateIDError{ID: it.ID, First: j, Again: i}
		}
		seen[it.ID] = i
	}
	return nil
}

// Label is the text shown for an item: its title, or the image URI when untitled.
func (it Item) Label() string {
	if it.Title != "" {
		return it.Title
	}
	if it.Img != "" {
		return it.Img
	}
	return "(untitled)"
}
