package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/notify"
	"github.com/Makepad-fr/gallery/internal/tui"
)

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "view [grid|arrange]",
		Short:       "Open the interactive gallery (grid: select and delete, arrange: also drag to reorder)",
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   []string{"grid", "arrange"},
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			view := app.cfg.View
			if len(args) == 1 {
				v, err := gallery.ParseView(args[0])
				if err != nil {
					return err
				}
				view = v
			}
			return runTUI(cmd, app, view)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, view gallery.View) error {
	client := app.client()
	toasts := notify.NewToasts(3)
	policy := view.DefaultPolicy()
	if app.cfg.Refresh != nil {
		policy = *app.cfg.Refresh
	}
	ctrl := gallery.NewController(client, client, gallery.Options{
		View:     view,
		Policy:   &policy,
		Notifier: notify.Logged(app.log, toasts),
		Log:      app.log,
	})
	return tui.Run(cmd.Context(), ctrl, toasts, tui.Options{Title: app.cfg.BaseURL, Log: app.log})
}
