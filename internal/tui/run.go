package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/notify"
)

// Run starts the interactive gallery and blocks until the user quits.
func Run(ctx context.Context, ctrl *gallery.Controller, toasts *notify.Toasts, opt Options) error {
	m := New(ctx, ctrl, toasts, opt)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
