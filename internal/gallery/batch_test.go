package gallery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/gallery/internal/model"
)

func loadedController(t *testing.T, svc *fakeService, view View, n Notifier) *Controller {
	t.Helper()
	c := NewController(svc, svc, Options{View: view, Notifier: n})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestDeleteSelectedPartialFailure(t *testing.T) {
	svc := newFakeService("1", "2", "3")
	svc.fail["3"] = statusErr(404)
	rec := &recorder{}
	c := loadedController(t, svc, ViewGrid, rec)

	c.Toggle("1")
	c.Toggle("3")
	results := c.DeleteSelected(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, Deleted, results[0].Outcome)
	assert.Equal(t, Rejected, results[1].Outcome)
	assert.Equal(t, 404, results[1].Status)

	require.Len(t, rec.got, 2)
	assert.Equal(t, LevelSuccess, rec.got[0].Level)
	assert.Equal(t, model.ID("1"), rec.got[0].ItemID)
	assert.Equal(t, LevelError, rec.got[1].Level)
	assert.Equal(t, model.ID("3"), rec.got[1].ItemID)
	assert.Contains(t, rec.got[1].Text, "404")

	assert.Zero(t, c.Sel.Len())
	assert.Equal(t, []model.ID{"2", "3"}, ids(c.Items()))
}

func TestDeleteSelectedTransportFailure(t *testing.T) {
	svc := newFakeService("1", "2")
	svc.fail["1"] = errNetwork
	rec := &recorder{}
	c := loadedController(t, svc, ViewGrid, rec)

	c.Toggle("1")
	c.Toggle("2")
	results := c.DeleteSelected(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, Failed, results[0].Outcome)
	assert.ErrorIs(t, results[0].Err, errNetwork)
	assert.Equal(t, Deleted, results[1].Outcome, "a failure must not stop later ids")
	assert.Contains(t, rec.got[0].Text, "connection refused")
	assert.Zero(t, c.Sel.Len())
}

func TestDeleteSelectedClearsEvenWhenAllFail(t *testing.T) {
	svc := newFakeService("1", "2", "3")
	for _, id := range []model.ID{"1", "2", "3"} {
		svc.fail[id] = statusErr(500)
	}
	c := loadedController(t, svc, ViewArrange, nil)
	c.Toggle("2")
	c.Toggle("3")
	c.DeleteSelected(context.Background())
	assert.Zero(t, c.Sel.Len())
	assert.Len(t, c.Items(), 3)
}

func TestDeleteSelectedOrderFollowsSelection(t *testing.T) {
	svc := newFakeService("1", "2", "3", "4")
	c := loadedController(t, svc, ViewGrid, nil)
	c.Toggle("4")
	c.Toggle("1")
	c.Toggle("3")
	c.DeleteSelected(context.Background())
	assert.Equal(t, []model.ID{"4", "1", "3"}, svc.deleted)
}

func TestDeleteSelectedEmptyIsNoop(t *testing.T) {
	svc := newFakeService("1")
	c := loadedController(t, svc, ViewGrid, nil)
	hits := svc.listHits
	assert.Nil(t, c.DeleteSelected(context.Background()))
	assert.Empty(t, svc.deleted)
	assert.Equal(t, hits, svc.listHits)
}

func TestDeleteSelectedWithoutSelection(t *testing.T) {
	svc := newFakeService("1")
	co := &Coordinator{Remover: svc, Refresher: NewController(svc, svc, Options{}), Policy: RefreshOnce}
	assert.NotPanics(t, func() {
		assert.Nil(t, co.DeleteSelected(context.Background()))
	})
	assert.Empty(t, svc.deleted)
	assert.Zero(t, svc.listHits)
}

func TestRefreshPolicies(t *testing.T) {
	t.Run("each", func(t *testing.T) {
		svc := newFakeService("1", "2", "3")
		c := loadedController(t, svc, ViewGrid, nil)
		require.Equal(t, RefreshEach, c.Policy)
		hits := svc.listHits
		c.Toggle("1")
		c.Toggle("2")
		c.Toggle("3")
		c.DeleteSelected(context.Background())
		assert.Equal(t, hits+3, svc.listHits)
	})

	t.Run("batch", func(t *testing.T) {
		svc := newFakeService("1", "2", "3")
		c := loadedController(t, svc, ViewArrange, nil)
		require.Equal(t, RefreshOnce, c.Policy)
		hits := svc.listHits
		c.Toggle("1")
		c.Toggle("2")
		c.Toggle("3")
		c.DeleteSelected(context.Background())
		assert.Equal(t, hits+1, svc.listHits)
		assert.Empty(t, c.Items())
	})

	t.Run("override", func(t *testing.T) {
		p := RefreshOnce
		svc := newFakeService("1")
		c := NewController(svc, svc, Options{View: ViewGrid, Policy: &p})
		assert.Equal(t, RefreshOnce, c.Policy)
	})
}

func TestBatchDedupesAndSequences(t *testing.T) {
	b := NewBatch([]model.ID{"2", "1", "2", "3", "1"}, RefreshOnce)
	assert.Equal(t, []model.ID{"2", "1", "3"}, b.IDs())

	id, ok := b.Pending()
	require.True(t, ok)
	assert.Equal(t, model.ID("2"), id)

	_, err := b.Record("1", nil)
	assert.Error(t, err, "out of order result")

	r, err := b.Record("2", nil)
	require.NoError(t, err)
	assert.True(t, r.OK())
	_, err = b.Record("1", statusErr(403))
	require.NoError(t, err)
	_, err = b.Record("3", errNetwork)
	require.NoError(t, err)

	assert.True(t, b.Done())
	_, err = b.Record("3", nil)
	assert.Error(t, err)

	done, total := b.Progress()
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, total)
	deleted, failed := b.Summary()
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 2, failed)
}

func TestResultNotificationText(t *testing.T) {
	assert.Equal(t, "Item with ID 7 deleted successfully.", Result{ID: "7"}.Notification().Text)
	assert.Equal(t, "Error deleting item with ID 7: status 404",
		Result{ID: "7", Outcome: Rejected, Status: 404}.Notification().Text)
	assert.Equal(t, "Error deleting item with ID 7: connection refused",
		Result{ID: "7", Outcome: Failed, Err: errNetwork}.Notification().Text)
}

func TestParseRefreshPolicy(t *testing.T) {
	p, err := ParseRefreshPolicy("each")
	require.NoError(t, err)
	assert.Equal(t, RefreshEach, p)
	p, err = ParseRefreshPolicy("batch")
	require.NoError(t, err)
	assert.Equal(t, RefreshOnce, p)
	_, err = ParseRefreshPolicy("sometimes")
	assert.Error(t, err)
}
