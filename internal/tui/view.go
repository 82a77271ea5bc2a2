package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/model"
	"github.com/Makepad-fr/gallery/internal/ui"
)

var (
	thickBorder = lipgloss.ThickBorder()
	monoFocus   = lipgloss.Border{
		Top: "=", Bottom: "=", Left: "#", Right: "#",
		TopLeft: "#", TopRight: "#", BottomLeft: "#", BottomRight: "#",
	}
)

func deleteButtonText(n int) string {
	return fmt.Sprintf("[ Delete Selected (%d) ]", n)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(m.toastView())
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView() string {
	t := ui.Current()
	line := fmt.Sprintf("%s  %s   %s %d  %s %d",
		t.Title.Render("Gallery"),
		t.Accent.Render(m.ctrl.View.String()),
		t.Muted.Render("items"), m.ctrl.Store.Len(),
		t.Muted.Render("selected"), m.ctrl.Sel.Len(),
	)
	if m.title != "" {
		line += "  " + t.Muted.Render(m.title)
	}
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) statusView() string {
	t := ui.Current()
	var parts []string
	if n := m.ctrl.Sel.Len(); n > 0 && !m.busy() {
		parts = append(parts, t.Error.Render(deleteButtonText(n)))
	}
	if m.batch != nil {
		done, total := m.batch.Progress()
		parts = append(parts, t.Pending.Render("deleting "+ui.ProgressBar(done, total, 16)))
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+" "+t.Muted.Render("loading items"))
	}
	if m.ctrl.Drag.Active() {
		parts = append(parts, t.Accent.Render(t.SymDrag+" dragging "+m.ctrl.Drag.ID().String()))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

func (m Model) gridView() string {
	g := m.grid()
	height := g.rows * cardHeight
	items := m.ctrl.Store.Items()
	if len(items) == 0 {
		msg := "no items"
		if m.loading && !m.ctrl.Store.Loaded() {
			msg = "loading…"
		}
		return lipgloss.NewStyle().Height(height).Render(ui.Current().Muted.Render(msg))
	}

	rows := make([]string, 0, g.rows)
	for r := 0; r < g.rows; r++ {
		start := (g.firstRow + r) * g.cols
		if start >= len(items) {
			break
		}
		cells := make([]string, 0, 2*g.cols)
		for c := 0; c < g.cols && start+c < len(items); c++ {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, m.cardView(start+c, items[start+c]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.NewStyle().Height(height).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) cardView(i int, it model.Item) string {
	t := ui.Current()
	selected := m.ctrl.Selected(it.ID)
	dragged := m.ctrl.Drag.Active() && m.ctrl.Drag.Index() == i

	color := t.Unselected
	if selected {
		color = t.Selected
	}
	border := t.Border
	if i == m.focus {
		border = thickBorder
		if t.Name == "mono" {
			border = monoFocus
		}
	}

	inner := cardWidth - 4 // border and padding
	head := t.Box(selected) + " #" + it.ID.String()
	title := it.Title
	if title == "" {
		title = t.Muted.Render("(untitled)")
	}
	img := it.Img
	if img == "" {
		img = "(no image)"
	}
	lines := []string{
		ansi.Truncate(head, inner, "…"),
		ansi.Truncate(title, inner, "…"),
		t.Muted.Render(ansi.Truncate(img, inner, "…")),
	}
	body := strings.Join(lines, "\n")
	if dragged {
		body = t.Muted.Render(ansi.Truncate(t.SymDrag+" "+it.Label(), inner, "…") + "\n\n")
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Width(cardWidth-2).
		Height(cardHeight-2).
		Padding(0, 1).
		Render(body)
}

func (m Model) toastView() string {
	t := ui.Current()
	vis := m.toasts.Visible(m.now())
	if len(vis) > toastLines {
		vis = vis[len(vis)-toastLines:]
	}
	var b strings.Builder
	for _, n := range vis {
		line := t.Success.Render(t.SymOK + " " + n.Text)
		if n.Level == gallery.LevelError {
			line = t.Error.Render(t.SymFail + " " + n.Text)
		}
		b.WriteString(ansi.Truncate(line, m.width, "…"))
		b.WriteString("\n")
	}
	for i := len(vis); i < toastLines; i++ {
		b.WriteString("\n")
	}
	return b.String()
}
