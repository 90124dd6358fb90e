package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
	"github.com/tartampluch/go-lifeweeks/internal/store"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	debug      bool

	settings   config.Settings
	translator *locale.Translator
	clock      engine.Clock
	importer   *engine.Importer
	logCloser  io.Closer
}

// init sets up logging, reads the settings and wires the shared services.
func (a *app) init(cmd *cobra.Command) error {
	a.close()
	a.logCloser = setupLogging(cmd.ErrOrStderr(), logLevel(cmd, a.debug), a.debug)
	logStartupInfo()

	settings, err := config.LoadSettings(viper.New(), a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	slog.Debug(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyConfig, settings.ConfigFile,
		config.LogKeyBackend, settings.StoreBackend,
	)

	a.translator = locale.New(settings.Language)
	if a.clock == nil {
		a.clock = engine.RealClock{}
	}
	a.importer = &engine.Importer{Fetcher: engine.NewHTTPFetcher()}
	return nil
}

// openStore builds the configured backend. The preferences backend needs
// the desktop app and is rejected here.
func (a *app) openStore() (store.Store, error) {
	return store.Open(a.settings, nil)
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
		a.logCloser = nil
	}
}
