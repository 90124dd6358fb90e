package ui

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
	"github.com/tartampluch/go-lifeweeks/internal/publish"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/tartampluch/go-lifeweeks/internal/store"
)

// LifeWeeksApp encapsulates the UI state, the persisted profile and the
// optional feed services.
type LifeWeeksApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Translator  *locale.Translator
	Ctx         context.Context

	Store     store.Store
	Importer  *engine.Importer
	Clock     engine.Clock // Injected clock for testability (e.g. mocking time travel)
	Server    *server.FeedServer
	Publisher *publish.Publisher

	// DefaultLifespan seeds the form slider and is restored by reset.
	DefaultLifespan int
	// Reveal animates the grid row by row. Tests turn it off.
	Reveal bool

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem  *fyne.MenuItem
	TrayRefreshItem *fyne.MenuItem

	profile       *engine.Profile
	lifespanYears int

	form *formView
	grid *gridView
}

// NewLifeWeeksApp constructs the application and wires dependencies.
// Server and Publisher stay nil unless the caller enables the feeds.
func NewLifeWeeksApp(a fyne.App, ctx context.Context, st store.Store, tr *locale.Translator) *LifeWeeksApp {
	prefs := a.Preferences()
	if lang := prefs.String(config.PrefLanguage); lang != "" {
		tr.SetLanguage(lang)
	}

	return &LifeWeeksApp{
		App:             a,
		Preferences:     prefs,
		Translator:      tr,
		Ctx:             ctx,
		Store:           st,
		Importer:        &engine.Importer{Fetcher: engine.NewHTTPFetcher()},
		Clock:           engine.RealClock{}, // Default to real clock in production
		Reveal:          true,
		DefaultLifespan: config.DefaultLifespanYears,
	}
}

// Start creates the main window and shows either the restored grid or the
// input form. It does not block.
func (app *LifeWeeksApp) Start() {
	app.Window = app.App.NewWindow(app.Translator.Msg(config.TKeyAppTitle))
	app.Window.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))

	app.lifespanYears = app.DefaultLifespan
	app.restoreProfile()
	app.showCurrentView()
}

// Run launches the feed services, the tray and the main UI loop.
func (app *LifeWeeksApp) Run() {
	app.Start()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)
			}
		}()
	}
	if app.Publisher != nil {
		go app.Publisher.Run(app.Ctx)
	}
	go app.viewWorker(app.Ctx)

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
		// With a tray, closing the window only hides it.
		app.Window.SetCloseIntercept(app.Window.Hide)
	}

	app.Window.ShowAndRun()
}

// restoreProfile loads a previously saved record. Invalid records are
// ignored so the user lands on the form.
func (app *LifeWeeksApp) restoreProfile() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	rec, ok, err := app.Store.Load(app.Ctx)
	if err != nil {
		log.Warn(config.MsgStoreWarn, config.LogKeyError, err)
		return
	}
	if !ok {
		return
	}

	p, err := rec.Profile(app.Clock.Now())
	if err != nil {
		log.Warn(config.MsgProfileInvalid, config.LogKeyError, err)
		return
	}

	app.profile = &p
	app.lifespanYears = p.Lifespan.Years()
	log.Info(config.MsgProfileLoaded, config.LogKeyLifespan, app.lifespanYears)
}

// showCurrentView swaps the window content to match the profile state.
func (app *LifeWeeksApp) showCurrentView() {
	if app.profile == nil {
		app.grid = nil
		app.form = app.buildForm()
		app.Window.SetContent(app.form.content)
	} else {
		app.form = nil
		app.grid = app.buildGrid()
		app.Window.SetContent(app.grid.content)
	}
	app.Window.SetTitle(app.Translator.Msg(config.TKeyAppTitle))
	app.updateTrayStatus()
}

// viewWorker keeps the grid and the tray current while the app lives in the
// tray across day and week boundaries.
func (app *LifeWeeksApp) viewWorker(ctx context.Context) {
	ticker := time.NewTicker(config.ViewCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(app.refreshIfStale)
		}
	}
}

// refreshIfStale rebuilds the grid once the clock has moved past the day the
// view was built on. The form is left alone so typed input survives.
func (app *LifeWeeksApp) refreshIfStale() {
	if app.grid == nil || app.profile == nil {
		return
	}

	shown := app.grid.snap.Now
	now := app.Clock.Now()
	if sameDay(shown, now) {
		return
	}

	slog.Info(config.MsgViewStale,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLived, app.grid.snap.WeeksLived(),
	)
	app.showCurrentView()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// saveProfile persists p, makes it current and asks the feeds to refresh.
// A storage failure is logged and the session continues in memory.
func (app *LifeWeeksApp) saveProfile(p engine.Profile) {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	if err := app.Store.Save(app.Ctx, store.NewRecord(p)); err != nil {
		log.Warn(config.MsgStoreWarn, config.LogKeyError, err)
	} else {
		log.Info(config.MsgProfileSaved, config.LogKeyLifespan, p.Lifespan.Years())
	}

	app.profile = &p
	app.lifespanYears = p.Lifespan.Years()
	app.requestPublish()
}

// reset clears the stored record and returns to the form.
func (app *LifeWeeksApp) reset() {
	if err := app.Store.Clear(app.Ctx); err != nil {
		slog.Warn(config.MsgStoreWarn,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	} else {
		slog.Info(config.MsgProfileCleared, config.LogKeyComponent, config.CompUI)
	}

	app.profile = nil
	app.lifespanYears = app.DefaultLifespan
	app.showCurrentView()
}

// setLanguage switches the active locale, remembers it and redraws.
func (app *LifeWeeksApp) setLanguage(lang string) {
	if lang == app.Translator.Language() {
		return
	}
	app.Translator.SetLanguage(lang)
	app.Preferences.SetString(config.PrefLanguage, app.Translator.Language())
	app.RefreshTrayMenu()
	app.showCurrentView()
	app.requestPublish()
}

func (app *LifeWeeksApp) requestPublish() {
	if app.Publisher != nil {
		app.Publisher.Trigger()
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *LifeWeeksApp) setupTrayMenu() {
	// The status item doubles as a button bringing the window back.
	app.TrayStatusItem = fyne.NewMenuItem(app.Translator.Msg(config.TKeyTrayIdle), func() {
		app.refreshIfStale()
		app.Window.Show()
		app.Window.RequestFocus()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.Translator.Msg(config.TKeyMenuRefresh), app.requestPublish)
	app.TrayRefreshItem.Disabled = app.Publisher == nil

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
	app.updateTrayStatus()
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *LifeWeeksApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.Translator.Msg(config.TKeyMenuRefresh)
	app.updateTrayStatus()
}

// updateTrayStatus shows the current week, "Week N of T", in the tray.
func (app *LifeWeeksApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	label := app.Translator.Msg(config.TKeyTrayIdle)
	if app.profile != nil {
		// Reuse the grid's sample so both views agree on the current week.
		var s engine.Snapshot
		if app.grid != nil {
			s = app.grid.snap
		} else {
			s = engine.NewSnapshot(*app.profile, app.Clock.Now())
		}
		if !s.LifespanExceeded() {
			label = app.Translator.EventSummary(s.WeeksLived()+1, s.TotalWeeks())
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}
