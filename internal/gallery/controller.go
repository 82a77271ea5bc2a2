package gallery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/gallery/internal/model"
)

// View selects which page behaviour a controller follows.
type View int

const (
	// ViewGrid is the checkbox grid; it reloads after every delete.
	ViewGrid View = iota
	// ViewArrange adds drag reordering; it reloads once per batch.
	ViewArrange
)

func (v View) String() string {
	if v == ViewArrange {
		return "arrange"
	}
	return "grid"
}

func ParseView(s string) (View, error) {
	switch s {
	case "grid", "":
		return ViewGrid, nil
	case "arrange":
		return ViewArrange, nil
	}
	return 0, fmt.Errorf("unknown view %q (want grid|arrange)", s)
}

// DefaultPolicy is the refresh policy a view uses unless configured otherwise.
func (v View) DefaultPolicy() RefreshPolicy {
	if v == ViewArrange {
		return RefreshOnce
	}
	return RefreshEach
}

// Draggable reports whether the view supports reordering.
func (v View) Draggable() bool { return v == ViewArrange }

// Controller owns the state of one view: items, selection and drag gesture.
// It is not safe for concurrent use; callers mutate it from one event loop.
type Controller struct {
	View     View
	Policy   RefreshPolicy
	Store    *Store
	Sel      *Selection
	Drag     Drag
	Remover  Remover
	Notifier Notifier
	Log      *slog.Logger
}

type Options struct {
	View     View
	Policy   *RefreshPolicy
	Notifier Notifier
	Log      *slog.Logger
}

func NewController(src Source, rm Remover, opt Options) *Controller {
	c := &Controller{
		View:     opt.View,
		Policy:   opt.View.DefaultPolicy(),
		Store:    NewStore(src),
		Sel:      NewSelection(),
		Remover:  rm,
		Notifier: opt.Notifier,
		Log:      opt.Log,
	}
	if opt.Policy != nil {
		c.Policy = *opt.Policy
	}
	if c.Notifier == nil {
		c.Notifier = Discard
	}
	if c.Log == nil {
		c.Log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Load fetches the sequence, reconciles the selection and reports a failure to the user.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.Store.Source().ListItems(ctx)
	return c.Apply(items, err)
}

// Refresh is Load; it satisfies Refresher.
func (c *Controller) Refresh(ctx context.Context) error { return c.Load(ctx) }

// Apply installs the result of a fetch made elsewhere.
func (c *Controller) Apply(items []model.Item, fetchErr error) error {
	err := fetchErr
	if err == nil {
		err = c.Store.Replace(items)
	}
	if err != nil {
		c.Log.Warn("load items", "error", err)
		c.Notifier.Notify(Notification{Level: LevelError, Text: "Error loading items: " + err.Error()})
		return fmt.Errorf("load items: %w", err)
	}
	if c.Drag.Active() {
		c.Drag = Drag{}
	}
	if dropped := c.Sel.Retain(c.Store.Has); len(dropped) > 0 {
		c.Log.Debug("selection reconciled", "dropped", dropped)
	}
	c.Log.Debug("items loaded", "count", c.Store.Len())
	return nil
}

func (c *Controller) Items() []model.Item { return c.Store.Items() }

func (c *Controller) Toggle(id model.ID) { c.Sel.Toggle(id) }

func (c *Controller) Selected(id model.ID) bool { return c.Sel.Contains(id) }

// Move reorders locally; views without drag support refuse.
func (c *Controller) Move(from, to int) error {
	if !c.View.Draggable() {
		return fmt.Errorf("%s view does not support reordering", c.View)
	}
	return c.Store.Move(from, to)
}

// BeginDrag starts dragging the item at index.
func (c *Controller) BeginDrag(index int) bool {
	if !c.View.Draggable() {
		return false
	}
	it, ok := c.Store.At(index)
	if !ok {
		return false
	}
	c.Drag.Begin(index, it.ID)
	return true
}

// HoverDrag applies a live move when the pointer crosses the target's midpoint.
func (c *Controller) HoverDrag(target int, b Bounds, pointerY float64) (Move, bool) {
	if target < 0 || target >= c.Store.Len() {
		return Move{}, false
	}
	mv, ok := c.Drag.Hover(target, b, pointerY)
	if !ok {
		return Move{}, false
	}
	if err := c.Store.Move(mv.From, mv.To); err != nil {
		c.Log.Warn("drag move", "error", err)
		c.Drag = Drag{}
		return Move{}, false
	}
	return mv, true
}

// DropDrag ends the gesture and keeps the previewed order.
func (c *Controller) DropDrag() (Move, bool) {
	return c.Drag.Drop()
}

// CancelDrag ends the gesture and restores the order it started from.
func (c *Controller) CancelDrag() {
	mv, ok := c.Drag.Cancel()
	if !ok {
		return
	}
	if err := c.Store.Move(mv.From, mv.To); err != nil {
		c.Log.Warn("drag cancel", "error", err)
	}
}

// Coordinator returns a batch coordinator bound to this view's state.
func (c *Controller) Coordinator() *Coordinator {
	return &Coordinator{
		Remover:   c.Remover,
		Refresher: c,
		Selection: c.Sel,
		Notifier:  c.Notifier,
		Policy:    c.Policy,
		Log:       c.Log,
	}
}

// DeleteSelected deletes the selection synchronously.
func (c *Controller) DeleteSelected(ctx context.Context) []Result {
	return c.Coordinator().DeleteSelected(ctx)
}
