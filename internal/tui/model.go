package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/model"
	"github.com/Makepad-fr/gallery/internal/notify"
)

const toastTick = 250 * time.Millisecond

// itemsLoadedMsg carries a finished GET /items. step marks a reload issued
// between two deletes of a running batch.
type itemsLoadedMsg struct {
	seq   uint64
	items []model.Item
	err   error
	step  bool
}

type deleteDoneMsg struct {
	id  model.ID
	err error
}

type toastTickMsg time.Time

// Model is the Bubble Tea model of one gallery view. All controller
// mutations happen in Update; commands only perform I/O and report back.
type Model struct {
	ctx    context.Context
	ctrl   *gallery.Controller
	toasts *notify.Toasts
	log    *slog.Logger
	title  string

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width, height int
	focus         int
	firstRow      int

	loading bool
	batch   *gallery.Batch
	pressed bool // left button held since a press on a card
	ticking bool

	// fetchSeq numbers the latest GET /items issued; older replies are dropped.
	fetchSeq uint64

	now  func() time.Time
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

type Options struct {
	// Title is shown in the header, typically the service URL.
	Title string
	Log   *slog.Logger
}

// New wires a model to ctrl. The controller's notifier should feed toasts.
func New(ctx context.Context, ctrl *gallery.Controller, toasts *notify.Toasts, opt Options) Model {
	if opt.Log == nil {
		opt.Log = slog.New(slog.DiscardHandler)
	}
	if toasts == nil {
		toasts = notify.NewToasts(toastLines)
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		toasts:   toasts,
		log:      opt.Log,
		title:    opt.Title,
		keys:     newKeyMap(ctrl.View.Draggable()),
		help:     help.New(),
		spinner:  sp,
		width:    80,
		height:   24,
		loading:  true,
		fetchSeq: 1,
		now:      time.Now,
		tick:     tea.Tick,
	}
}

// Init starts the first load; New already marks the model as loading.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(m.fetchSeq, false), m.spinner.Tick)
}

// Controller exposes the view state, mostly for callers inspecting the final model.
func (m Model) Controller() *gallery.Controller { return m.ctrl }

func (m Model) busy() bool { return m.batch != nil }

// reload issues a new fetch that supersedes any still in flight.
func (m Model) reload(step bool) (Model, tea.Cmd) {
	m.fetchSeq++
	m.loading = true
	return m, tea.Batch(m.fetchCmd(m.fetchSeq, step), m.spinner.Tick)
}

func (m Model) fetchCmd(seq uint64, step bool) tea.Cmd {
	ctx, src := m.ctx, m.ctrl.Store.Source()
	return func() tea.Msg {
		items, err := src.ListItems(ctx)
		return itemsLoadedMsg{seq: seq, items: items, err: err, step: step}
	}
}

func (m Model) deleteCmd(id model.ID) tea.Cmd {
	ctx, rm := m.ctx, m.ctrl.Remover
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: rm.DeleteItem(ctx, id)}
	}
}

// startBatch snapshots the selection and issues the first delete.
func (m Model) startBatch() (Model, tea.Cmd) {
	if m.busy() || m.ctrl.Sel.Len() == 0 {
		return m, nil
	}
	m.batch = gallery.NewBatch(m.ctrl.Sel.IDs(), m.ctrl.Policy)
	m.log.Debug("batch delete", "count", m.batch.Len(), "refresh", m.batch.Policy)
	return m.nextDelete()
}

// nextDelete issues the pending delete, or finishes the batch.
func (m Model) nextDelete() (Model, tea.Cmd) {
	if m.batch == nil {
		return m, nil
	}
	if id, ok := m.batch.Pending(); ok {
		return m, m.deleteCmd(id)
	}
	deleted, failed := m.batch.Summary()
	m.log.Info("batch delete finished", "deleted", deleted, "failed", failed)
	policy := m.batch.Policy
	m.batch = nil
	m.ctrl.Sel.Clear()
	if policy == gallery.RefreshOnce {
		return m.reload(false)
	}
	return m, nil
}

// ensureTicking starts the toast expiry ticker when toasts are showing.
func (m Model) ensureTicking() (Model, tea.Cmd) {
	if m.ticking || len(m.toasts.Visible(m.now())) == 0 {
		return m, nil
	}
	m.ticking = true
	return m, m.tick(toastTick, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

func (m Model) grid() grid {
	return newGrid(m.width, m.height, m.ctrl.Store.Len(), m.firstRow)
}

// setFocus clamps i to the item range and scrolls it into view.
func (m Model) setFocus(i int) Model {
	n := m.ctrl.Store.Len()
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	m.focus = i
	m.firstRow = m.grid().scrollTo(i)
	return m
}
