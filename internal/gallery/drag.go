package gallery

import "github.com/Makepad-fr/gallery/internal/model"

type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
	DragPreview
)

func (p DragPhase) String() string {
	switch p {
	case DragActive:
		return "dragging"
	case DragPreview:
		return "preview"
	default:
		return "idle"
	}
}

// Bounds is the vertical extent of a hovered card, in the same units as the pointer.
type Bounds struct {
	Top, Bottom float64
}

// Mid is the card's vertical midpoint measured from Top.
func (b Bounds) Mid() float64 { return (b.Bottom - b.Top) / 2 }

// Drag tracks one drag gesture. The tracked index follows the dragged item
// as live moves are applied, so every Hover compares against where it is now.
type Drag struct {
	phase  DragPhase
	id     model.ID
	origin int
	index  int
}

func (d *Drag) Phase() DragPhase { return d.phase }

func (d *Drag) Active() bool { return d.phase != DragIdle }

// ID is the dragged item, empty when idle.
func (d *Drag) ID() model.ID { return d.id }

// Index is the dragged item's current position, -1 when idle.
func (d *Drag) Index() int {
	if d.phase == DragIdle {
		return -1
	}
	return d.index
}

// Begin starts a gesture on the item at index. A gesture already in progress is replaced.
func (d *Drag) Begin(index int, id model.ID) {
	*d = Drag{phase: DragActive, id: id, origin: index, index: index}
}

// Hover reports whether the pointer over the card at target should move the
// dragged item there. A downward drag fires only once the pointer is past the
// target's midpoint, an upward one only once it is above it.
func (d *Drag) Hover(target int, b Bounds, pointerY float64) (Move, bool) {
	if d.phase == DragIdle || target == d.index {
		return Move{}, false
	}
	y := pointerY - b.Top
	if d.index < target && y < b.Mid() {
		return Move{}, false
	}
	if d.index > target && y > b.Mid() {
		return Move{}, false
	}
	mv := Move{From: d.index, To: target}
	d.index = target
	d.phase = DragPreview
	return mv, true
}

// Drop ends the gesture and returns its net effect.
func (d *Drag) Drop() (Move, bool) {
	if d.phase == DragIdle {
		return Move{}, false
	}
	mv := Move{From: d.origin, To: d.index}
	*d = Drag{}
	return mv, !mv.Noop()
}

// Cancel ends the gesture and returns the move that puts the item back where it started.
func (d *Drag) Cancel() (Move, bool) {
	if d.phase == DragIdle {
		return Move{}, false
	}
	mv := Move{From: d.index, To: d.origin}
	*d = Drag{}
	return mv, !mv.Noop()
}
