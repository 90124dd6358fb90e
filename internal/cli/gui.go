package cli

import (
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/publish"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/tartampluch/go-lifeweeks/internal/store"
	"github.com/tartampluch/go-lifeweeks/internal/ui"
)

func newGUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "gui",
		Short:       "Open the desktop app (the default)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{config.AnnotationService: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd, a)
		},
	}
}

// runGUI initializes the Fyne application, wires dependencies, and starts
// the UI loop. It blocks until the main window closes.
func runGUI(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	fa := fyneapp.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	fa.Preferences().SetString(config.PrefLastRun, config.Version)

	st, err := store.Open(a.settings, fa.Preferences())
	if err != nil {
		return err
	}

	gui := ui.NewLifeWeeksApp(fa, ctx, st, a.translator)
	gui.Clock = a.clock
	gui.DefaultLifespan = a.settings.Lifespan

	if a.settings.ServerEnabled {
		srv := server.NewFeedServer(a.settings.ServerPort)
		pub := publish.New(st, a.translator, srv, a.settings.WeeksAhead, a.settings.RefreshInterval)
		pub.Clock = a.clock
		gui.Server = srv
		gui.Publisher = pub
	}

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompCLI)
		fyne.Do(fa.Quit)
	}()

	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompCLI)
	return nil
}
