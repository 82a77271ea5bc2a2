package gallery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/gallery/internal/model"
)

func TestStoreLoadReplacesSequence(t *testing.T) {
	svc := newFakeService("1", "2", "3")
	s := NewStore(svc)
	assert.False(t, s.Loaded())

	items, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.ID{"1", "2", "3"}, ids(items))
	assert.True(t, s.Loaded())

	require.NoError(t, s.Move(0, 2))
	assert.Equal(t, []model.ID{"2", "3", "1"}, ids(s.Items()))

	// a refresh discards the local order
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.ID{"1", "2", "3"}, ids(s.Items()))
}

func TestStoreFailedLoadKeepsPrevious(t *testing.T) {
	svc := newFakeService("1", "2")
	s := NewStore(svc)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	svc.listErr = errNetwork
	items, err := s.Load(context.Background())
	require.ErrorIs(t, err, errNetwork)
	assert.Equal(t, []model.ID{"1", "2"}, ids(items))
}

func TestStoreRejectsDuplicateIDs(t *testing.T) {
	svc := newFakeService("1", "2")
	s := NewStore(svc)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	svc.items = append(svc.items, model.Item{ID: "1"})
	_, err = s.Load(context.Background())
	var dup model.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, s.Len())
}

func TestStoreLookups(t *testing.T) {
	s := NewStore(newFakeService("a", "b"))
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Index("b"))
	assert.Equal(t, -1, s.Index("z"))
	assert.True(t, s.Has("a"))
	it, ok := s.At(0)
	assert.True(t, ok)
	assert.Equal(t, model.ID("a"), it.ID)
	_, ok = s.At(2)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Move(0, 5), ErrIndexOutOfRange)
}

func TestStoreItemsIsCopy(t *testing.T) {
	s := NewStore(newFakeService("a"))
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	items := s.Items()
	items[0].Title = "changed"
	it, _ := s.At(0)
	assert.Empty(t, it.Title)
}
