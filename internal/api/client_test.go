package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/model"
)

// itemsServer mimics the items service: GET /items and DELETE /items/{id}.
type itemsServer struct {
	mu       sync.Mutex
	body     string
	deleted  []string
	statuses map[string]int
	auth     []string
}

func (s *itemsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = append(s.auth, r.Header.Get("Authorization"))
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/items":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.body))
	case r.Method == http.MethodDelete && len(r.URL.Path) > len("/items/"):
		id := r.URL.Path[len("/items/"):]
		s.deleted = append(s.deleted, id)
		if code, ok := s.statuses[id]; ok {
			w.WriteHeader(code)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, s *itemsServer) *Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 0)
}

func TestListItems(t *testing.T) {
	s := &itemsServer{body: `[{"id":1,"img":"https://x/1.png"},{"id":"2","img":"https://x/2.png","title":"two"}]`}
	c := newTestClient(t, s)

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, model.ID("1"), items[0].ID)
	assert.Equal(t, "two", items[1].Title)
	assert.Equal(t, []string{""}, s.auth)
}

func TestListItemsEmpty(t *testing.T) {
	c := newTestClient(t, &itemsServer{body: `null`})
	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListItemsRejectsMissingID(t *testing.T) {
	c := newTestClient(t, &itemsServer{body: `[{"id":1,"img":"a"},{"img":"b"}]`})
	_, err := c.ListItems(context.Background())
	assert.ErrorIs(t, err, model.ErrMissingID)
}

func TestListItemsBadJSON(t *testing.T) {
	c := newTestClient(t, &itemsServer{body: `{"oops"`})
	_, err := c.ListItems(context.Background())
	assert.Error(t, err)
}

func TestListItemsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).ListItems(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode())
}

func TestDeleteItem(t *testing.T) {
	s := &itemsServer{statuses: map[string]int{"3": http.StatusNotFound}}
	c := newTestClient(t, s)
	c.Token = "tok"

	require.NoError(t, c.DeleteItem(context.Background(), "1"))
	err := c.DeleteItem(context.Background(), "3")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Status)
	assert.Contains(t, err.Error(), "delete item 3")

	assert.Equal(t, []string{"1", "3"}, s.deleted)
	assert.Equal(t, []string{"Bearer tok", "Bearer tok"}, s.auth)
}

func TestDeleteItemEscapesID(t *testing.T) {
	s := &itemsServer{}
	c := newTestClient(t, s)
	require.NoError(t, c.DeleteItem(context.Background(), "a b"))
	assert.Equal(t, []string{"a b"}, s.deleted)
}

func TestDeleteItemTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, 0).DeleteItem(context.Background(), "1")
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

// The batch coordinator drives the real client against the scenario from the docs:
// 1 deletes, 3 answers 404, the refresh shows what the server now holds.
func TestCoordinatorAgainstServer(t *testing.T) {
	var mu sync.Mutex
	items := `[{"id":1,"img":"a"},{"id":2,"img":"b"},{"id":3,"img":"c"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(items))
		case r.URL.Path == "/items/1":
			items = `[{"id":2,"img":"b"},{"id":3,"img":"c"}]`
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, 0)
	var got []gallery.Notification
	c := gallery.NewController(client, client, gallery.Options{
		View:     gallery.ViewGrid,
		Notifier: gallery.NotifierFunc(func(n gallery.Notification) { got = append(got, n) }),
	})
	require.NoError(t, c.Load(context.Background()))
	c.Toggle("1")
	c.Toggle("3")
	c.DeleteSelected(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, gallery.LevelSuccess, got[0].Level)
	assert.Equal(t, gallery.LevelError, got[1].Level)
	assert.Contains(t, got[1].Text, "404")
	assert.Zero(t, c.Sel.Len())

	var ids []model.ID
	for _, it := range c.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []model.ID{"2", "3"}, ids)
}
