package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/gallery/internal/model"
	"github.com/Makepad-fr/gallery/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the items the service currently holds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.client().ListItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			if asJSON {
				b, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return fmt.Errorf("json marshal: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			ui.Panel(cmd.OutOrStdout(), listLines(items, app.cfg.BaseURL))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the items as JSON")
	return cmd
}

func listLines(items []model.Item, source string) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s", t.Title.Render("Gallery"), t.Accent.Render("Total"), len(items), t.Muted.Render(source)),
		"",
	}
	if len(items) == 0 {
		return append(lines, t.Muted.Render("no items"))
	}
	for i, it := range items {
		title := it.Title
		if title == "" {
			title = t.Muted.Render("(untitled)")
		}
		lines = append(lines, fmt.Sprintf("%s %-8s %s  %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			"#"+it.ID.String(),
			ansi.Truncate(title, 40, "..."),
			t.Muted.Render(ansi.Truncate(it.Img, 60, "..."))))
	}
	return lines
}
