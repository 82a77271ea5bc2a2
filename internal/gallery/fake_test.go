package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/Makepad-fr/gallery/internal/model"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

// fakeService is an in-memory stand-in for the REST service.
type fakeService struct {
	items    []model.Item
	fail     map[model.ID]error // delete answers other than success
	listErr  error
	deleted  []model.ID // every delete request, in order
	listHits int
}

func newFakeService(ids ...model.ID) *fakeService {
	f := &fakeService{fail: map[model.ID]error{}}
	for _, id := range ids {
		f.items = append(f.items, model.Item{ID: id, Img: "http://img/" + string(id) + ".png"})
	}
	return f
}

func (f *fakeService) ListItems(context.Context) ([]model.Item, error) {
	f.listHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Item(nil), f.items...), nil
}

func (f *fakeService) DeleteItem(_ context.Context, id model.ID) error {
	f.deleted = append(f.deleted, id)
	if err := f.fail[id]; err != nil {
		return err
	}
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return statusErr(404)
}

type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func ids(items []model.Item) []model.ID {
	out := make([]model.ID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

var errNetwork = errors.New("connection refused")
