package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/gallery/internal/gallery"
	"github.com/Makepad-fr/gallery/internal/model"
	"github.com/Makepad-fr/gallery/internal/notify"
	"github.com/Makepad-fr/gallery/internal/ui"
)

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete items one at a time, reporting each outcome",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := app.client()
			policy := gallery.RefreshOnce
			if app.cfg.Refresh != nil {
				policy = *app.cfg.Refresh
			}
			console := notify.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
			ctrl := gallery.NewController(client, client, gallery.Options{
				View:     gallery.ViewGrid,
				Policy:   &policy,
				Notifier: notify.Logged(app.log, console),
				Log:      app.log,
			})
			for _, a := range args {
				if id := model.ID(a); !ctrl.Selected(id) {
					ctrl.Toggle(id)
				}
			}
			results := ctrl.DeleteSelected(cmd.Context())

			deleted := 0
			for _, r := range results {
				if r.OK() {
					deleted++
				}
			}
			t := ui.Current()
			lines := []string{
				t.Muted.Render(ui.ProgressBar(deleted, len(results), 28)) + " deleted",
			}
			if ctrl.Store.Loaded() {
				lines = append(lines, fmt.Sprintf("%s %d", t.Accent.Render("Remaining"), ctrl.Store.Len()))
			}
			ui.Panel(cmd.OutOrStdout(), lines)

			if failed := len(results) - deleted; failed > 0 {
				return fmt.Errorf("%d of %d deletions failed", failed, len(results))
			}
			return nil
		},
	}
}
