package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/gallery/internal/api"
	"github.com/Makepad-fr/gallery/internal/auth"
	"github.com/Makepad-fr/gallery/internal/config"
	"github.com/Makepad-fr/gallery/internal/ui"
)

// annotation marking commands that own the terminal
const tuiAnnotation = "tui"

type App struct {
	CfgFile string

	v        *viper.Viper
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Browse, select and delete images of an items service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the checkbox grid
  gallery

  # Open the drag-and-drop view
  gallery view arrange

  # Scriptable commands
  gallery ls
  gallery rm 3 7 12
`),
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, app.cfg.View)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.CfgFile, "config", "", "config file (default $HOME/.gallery.yaml)")
	pf.String("base-url", api.DefaultBaseURL, "items service base URL")
	pf.String("view", "grid", "view opened without a subcommand (grid|arrange)")
	pf.String("theme", "classic", "colour theme (classic|neon|mono)")
	pf.String("refresh", "", "reload policy after deletes (each|batch); default depends on the view")
	pf.Duration("timeout", 0, "per-request timeout (0 waits forever)")
	pf.String("log-file", "", "append logs to this file")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	for key, flag := range map[string]string{
		config.KeyBaseURL:  "base-url",
		config.KeyView:     "view",
		config.KeyTheme:    "theme",
		config.KeyRefresh:  "refresh",
		config.KeyTimeout:  "timeout",
		config.KeyLogFile:  "log-file",
		config.KeyLogLevel: "log-level",
	} {
		_ = app.v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newAuthCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	if err := config.Init(app.v, app.CfgFile); err != nil {
		return err
	}
	cfg, err := config.From(app.v)
	if err != nil {
		return err
	}
	app.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.ApplyColorProfile()

	// the alt screen covers stderr, so the TUI only logs to a file
	var w io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[tuiAnnotation] == "true" {
		w = nil
	}
	log, closeFn, err := cfg.Logger(w)
	if err != nil {
		return err
	}
	app.log, app.closeLog = log, closeFn
	app.log.Debug("config", "base_url", cfg.BaseURL, "view", cfg.View, "refresh", cfg.Policy())
	return nil
}

func (app *App) client() *api.Client {
	c := api.New(app.cfg.BaseURL, app.cfg.Timeout)
	c.Token = auth.Token()
	return c
}

type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// Execute runs the command line and returns the process exit code:
// 0 on success, 2 for bad flags, 1 for everything else.
func Execute(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, cmd.UsageString())
		return 2
	}
	return 1
}
