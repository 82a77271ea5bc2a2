package notify

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/ui"
)

// Lifetimes of a toast per level.
const (
	SuccessTTL = 2 * time.Second
	ErrorTTL   = 4 * time.Second
)

// Toast is a notification with an expiry.
type Toast struct {
	gallery.Notification
	Expires time.Time
}

// Toasts keeps the most recent notifications until they expire.
type Toasts struct {
	mu    sync.Mutex
	max   int
	now   func() time.Time
	items []Toast
}

// NewToasts keeps at most max toasts; older ones are pushed out.
func NewToasts(max int) *Toasts {
	if max <= 0 {
		max = 5
	}
	return &Toasts{max: max, now: time.Now}
}

func (t *Toasts) Notify(n gallery.Notification) {
	ttl := SuccessTTL
	if n.Level == gallery.LevelError {
		ttl = ErrorTTL
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Notification: n, Expires: t.now().Add(ttl)})
	if over := len(t.items) - t.max; over > 0 {
		t.items = append([]Toast(nil), t.items[over:]...)
	}
}

// Visible returns the toasts alive at now, oldest first.
func (t *Toasts) Visible(now time.Time) []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Toast
	for _, it := range t.items {
		if now.Before(it.Expires) {
			out = append(out, it)
		}
	}
	return out
}

// Prune drops expired toasts and reports whether any remain.
func (t *Toasts) Prune(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.Expires) {
			kept = append(kept, it)
		}
	}
	t.items = kept
	return len(t.items) > 0
}

// Console prints notifications as ✔/✖ lines; errors go to Err.
type Console struct {
	Out, Err io.Writer
}

func (c Console) Notify(n gallery.Notification) {
	if n.Level == gallery.LevelError {
		ui.Fail(c.Err, n.Text)
		return
	}
	ui.OK(c.Out, n.Text)
}

// Logged logs every notification before passing it on.
func Logged(log *slog.Logger, next gallery.Notifier) gallery.Notifier {
	return gallery.NotifierFunc(func(n gallery.Notification) {
		if n.Level == gallery.LevelError {
			log.Error(n.Text, "item", n.ItemID)
		} else {
			log.Info(n.Text, "item", n.ItemID)
		}
		if next != nil {
			next.Notify(n)
		}
	})
}
