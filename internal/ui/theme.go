package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style

	// card border colours
	Selected, Unselected, Focus lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	Border                   lipgloss.Border
	SymOK, SymFail, SymDrag  string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.Color("9"),
		Unselected:   lipgloss.Color("34"),
		Focus:        lipgloss.Color("12"),
		BoxUnchecked: "☐", BoxChecked: "☑",
		Border: lipgloss.NormalBorder(),
		SymOK:  "✔", SymFail: "✖", SymDrag: "⠿",
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.Selected = lipgloss.Color("201")
		t.Unselected = lipgloss.Color("51")
		t.Focus = lipgloss.Color("226")
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.Border = lipgloss.RoundedBorder()
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain.Bold(true), Pending: plain,
			Selected: lipgloss.NoColor{}, Unselected: lipgloss.NoColor{}, Focus: lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border: lipgloss.ASCIIBorder(),
			SymOK:  "ok", SymFail: "x", SymDrag: "#",
		}
	default:
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }

// Box returns the checkbox glyph for a selection state.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}
