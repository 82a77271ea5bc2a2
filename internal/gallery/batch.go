package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/gallery/internal/model"
)

// Remover deletes one item on the service. A non-2xx answer should surface as
// an error with a StatusCode() int method; anything else counts as a transport failure.
type Remover interface {
	DeleteItem(ctx context.Context, id model.ID) error
}

// Refresher reloads the item sequence from the service.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type RefreshPolicy int

const (
	// RefreshEach reloads after every delete attempt.
	RefreshEach RefreshPolicy = iota
	// RefreshOnce reloads once after the whole batch.
	RefreshOnce
)

func (p RefreshPolicy) String() string {
	if p == RefreshOnce {
		return "batch"
	}
	return "each"
}

// ParseRefreshPolicy accepts "each" or "batch".
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch s {
	case "each":
		return RefreshEach, nil
	case "batch", "once":
		return RefreshOnce, nil
	}
	return 0, fmt.Errorf("unknown refresh policy %q (want each|batch)", s)
}

type Outcome int

const (
	Deleted Outcome = iota
	// Rejected means the service answered with a non-2xx status.
	Rejected
	// Failed means no answer arrived.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "deleted"
	}
}

// Result is the outcome of one delete attempt.
type Result struct {
	ID      model.ID
	Outcome Outcome
	Status  int
	Err     error
}

func (r Result) OK() bool { return r.Outcome == Deleted }

func (r Result) Notification() Notification {
	switch r.Outcome {
	case Rejected:
		return Notification{Level: LevelError, ItemID: r.ID,
			Text: fmt.Sprintf("Error deleting item with ID %s: status %d", r.ID, r.Status)}
	case Failed:
		return Notification{Level: LevelError, ItemID: r.ID,
			Text: fmt.Sprintf("Error deleting item with ID %s: %v", r.ID, r.Err)}
	}
	return Notification{Level: LevelSuccess, ItemID: r.ID,
		Text: fmt.Sprintf("Item with ID %s deleted successfully.", r.ID)}
}

func classify(id model.ID, err error) Result {
	if err == nil {
		return Result{ID: id, Outcome: Deleted}
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return Result{ID: id, Outcome: Rejected, Status: sc.StatusCode(), Err: err}
	}
	return Result{ID: id, Outcome: Failed, Err: err}
}

// Batch is the ordered list of delete attempts for one "delete selected" action.
// Attempts run one at a time; a failure never skips the ids after it.
type Batch struct {
	Policy  RefreshPolicy
	ids     []model.ID
	pos     int
	results []Result
}

// NewBatch keeps the first occurrence of every id, in order.
func NewBatch(ids []model.ID, policy RefreshPolicy) *Batch {
	seen := make(map[model.ID]struct{}, len(ids))
	uniq := make([]model.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	return &Batch{Policy: policy, ids: uniq}
}

// IDs returns the planned attempts.
func (b *Batch) IDs() []model.ID { return append([]model.ID(nil), b.ids...) }

func (b *Batch) Len() int { return len(b.ids) }

// Pending returns the next id to attempt.
func (b *Batch) Pending() (model.ID, bool) {
	if b.pos >= len(b.ids) {
		return "", false
	}
	return b.ids[b.pos], true
}

// Record stores the answer for the pending id and advances.
func (b *Batch) Record(id model.ID, err error) (Result, error) {
	want, ok := b.Pending()
	if !ok {
		return Result{}, fmt.Errorf("batch: result for %s after the last attempt", id)
	}
	if want != id {
		return Result{}, fmt.Errorf("batch: result for %s while %s is pending", id, want)
	}
	r := classify(id, err)
	b.results = append(b.results, r)
	b.pos++
	return r, nil
}

func (b *Batch) Done() bool { return b.pos >= len(b.ids) }

// Progress returns attempted and total counts.
func (b *Batch) Progress() (done, total int) { return b.pos, len(b.ids) }

func (b *Batch) Results() []Result { return append([]Result(nil), b.results...) }

// Summary counts the recorded outcomes.
func (b *Batch) Summary() (deleted, failed int) {
	for _, r := range b.results {
		if r.OK() {
			deleted++
		} else {
			failed++
		}
	}
	return
}

// Coordinator deletes the selection one id at a time and reports every outcome.
type Coordinator struct {
	Remover   Remover
	Refresher Refresher
	Selection *Selection
	Notifier  Notifier
	Policy    RefreshPolicy
	Log       *slog.Logger
}

// DeleteSelected snapshots the selection, attempts every id in order, then
// clears the selection whatever the outcomes were. An empty or missing
// selection does nothing.
func (c *Coordinator) DeleteSelected(ctx context.Context) []Result {
	if c.Selection == nil || c.Selection.Len() == 0 {
		return nil
	}
	return c.Delete(ctx, c.Selection.IDs())
}

// Delete runs a batch over ids.
func (c *Coordinator) Delete(ctx context.Context, ids []model.ID) []Result {
	b := NewBatch(ids, c.Policy)
	log := c.logger()
	log.Debug("batch delete", "count", b.Len(), "refresh", b.Policy)
	for {
		id, ok := b.Pending()
		if !ok {
			break
		}
		r, err := b.Record(id, c.Remover.DeleteItem(ctx, id))
		if err != nil {
			// only reachable if Pending and Record disagree
			log.Error("batch delete", "error", err)
			break
		}
		c.notify(r.Notification())
		if b.Policy == RefreshEach {
			c.refresh(ctx)
		}
	}
	if c.Selection != nil {
		c.Selection.Clear()
	}
	if b.Policy == RefreshOnce {
		c.refresh(ctx)
	}
	deleted, failed := b.Summary()
	log.Info("batch delete finished", "deleted", deleted, "failed", failed)
	return b.Results()
}

func (c *Coordinator) refresh(ctx context.Context) {
	if c.Refresher == nil {
		return
	}
	if err := c.Refresher.Refresh(ctx); err != nil {
		c.logger().Warn("refresh after delete", "error", err)
	}
}

func (c *Coordinator) notify(n Notification) {
	if c.Notifier == nil {
		return
	}
	c.Notifier.Notify(n)
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}
