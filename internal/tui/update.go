package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/gallery/internal/gallery"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m = m.setFocus(m.focus)
		return m, nil

	case itemsLoadedMsg:
		return m.onLoaded(msg)

	case deleteDoneMsg:
		return m.onDeleted(msg)

	case toastTickMsg:
		if m.toasts.Prune(m.now()) {
			return m, m.tick(toastTick, func(t time.Time) tea.Msg { return toastTickMsg(t) })
		}
		m.ticking = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.onMouse(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m Model) onLoaded(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		m.log.Debug("stale items dropped", "seq", msg.seq, "latest", m.fetchSeq)
		return m, nil
	}
	m.loading = false
	// failures are reported through the controller's notifier
	_ = m.ctrl.Apply(msg.items, msg.err)
	m.pressed = false
	m = m.setFocus(m.focus)

	var cmds []tea.Cmd
	if msg.step && m.batch != nil {
		var cmd tea.Cmd
		m, cmd = m.nextDelete()
		cmds = append(cmds, cmd)
	}
	var tick tea.Cmd
	m, tick = m.ensureTicking()
	cmds = append(cmds, tick)
	return m, tea.Batch(cmds...)
}

func (m Model) onDeleted(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if m.batch == nil {
		return m, nil
	}
	r, err := m.batch.Record(msg.id, msg.err)
	if err != nil {
		m.log.Error("batch delete", "error", err)
		return m, nil
	}
	m.ctrl.Notifier.Notify(r.Notification())

	var cmd tea.Cmd
	if m.batch.Policy == gallery.RefreshEach {
		m, cmd = m.reload(true)
	} else {
		m, cmd = m.nextDelete()
	}
	var tick tea.Cmd
	m, tick = m.ensureTicking()
	return m, tea.Batch(cmd, tick)
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Cancel) && m.ctrl.Drag.Active():
		id := m.ctrl.Drag.ID()
		m.ctrl.CancelDrag()
		m.pressed = false
		return m.setFocus(m.ctrl.Store.Index(id)), nil

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, k.Left):
		return m.setFocus(m.focus - 1), nil
	case key.Matches(msg, k.Right):
		return m.setFocus(m.focus + 1), nil
	case key.Matches(msg, k.Up):
		if m.focus-m.grid().cols >= 0 {
			return m.setFocus(m.focus - m.grid().cols), nil
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if m.focus+m.grid().cols < m.ctrl.Store.Len() {
			return m.setFocus(m.focus + m.grid().cols), nil
		}
		return m, nil
	}

	if m.busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Toggle):
		if it, ok := m.ctrl.Store.At(m.focus); ok {
			m.ctrl.Toggle(it.ID)
		}
		return m, nil

	case key.Matches(msg, k.Delete):
		return m.startBatch()

	case key.Matches(msg, k.Refresh):
		if m.loading {
			return m, nil
		}
		return m.reload(false)

	case key.Matches(msg, k.MoveLeft):
		return m.moveFocused(-1), nil
	case key.Matches(msg, k.MoveRight):
		return m.moveFocused(1), nil
	}
	return m, nil
}

func (m Model) moveFocused(delta int) Model {
	to := m.focus + delta
	if to < 0 || to >= m.ctrl.Store.Len() || m.ctrl.Drag.Active() {
		return m
	}
	if err := m.ctrl.Move(m.focus, to); err != nil {
		m.log.Debug("move", "error", err)
		return m
	}
	return m.setFocus(to)
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	g := m.grid()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == 1 && msg.X < len(deleteButtonText(m.ctrl.Sel.Len())) && m.ctrl.Sel.Len() > 0 {
			return m.startBatch()
		}
		i := g.hit(msg.X, msg.Y)
		if i < 0 {
			return m, nil
		}
		m.focus = i
		r, _ := g.rect(i)
		if checkboxLine(r, msg.Y) {
			if !m.busy() {
				it, _ := m.ctrl.Store.At(i)
				m.ctrl.Toggle(it.ID)
			}
			return m, nil
		}
		if !m.busy() && m.ctrl.BeginDrag(i) {
			m.pressed = true
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.pressed || !m.ctrl.Drag.Active() {
			return m, nil
		}
		i := g.hit(msg.X, msg.Y)
		r, ok := g.rect(i)
		if !ok {
			return m, nil
		}
		// pointer sits in the middle of its cell
		if mv, moved := m.ctrl.HoverDrag(i, r.bounds(), float64(msg.Y)+0.5); moved {
			m.focus = mv.To
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false
		if !m.ctrl.Drag.Active() {
			return m, nil
		}
		if g.hit(msg.X, msg.Y) < 0 {
			id := m.ctrl.Drag.ID()
			m.ctrl.CancelDrag()
			return m.setFocus(m.ctrl.Store.Index(id)), nil
		}
		if mv, ok := m.ctrl.DropDrag(); ok {
			m.log.Debug("reordered", "from", mv.From, "to", mv.To)
			m.focus = mv.To
		}
		return m, nil
	}
	return m, nil
}
