// Package locale wraps the embedded go-i18n bundle and locale-aware number
// formatting shared by the desktop app, the CLI and the exported image.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator is safe for concurrent use; the feed publisher reads it from
// its own goroutine while the UI may switch languages.
type Translator struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	languages []string
	lang      string
	localizer *i18n.Localizer
	printer   *message.Printer
}

// New loads every embedded locale and selects lang (falling back to English).
func New(lang string) *Translator {
	t := &Translator{bundle: i18n.NewBundle(language.English)}
	t.bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	t.loadLocales()
	t.SetLanguage(lang)
	return t
}

func (t *Translator) loadLocales() {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := t.bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.languages = append(t.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
	slices.Sort(t.languages)
}

// SetLanguage switches the active language. Unknown codes fall back to the default.
func (t *Translator) SetLanguage(lang string) {
	lang = strings.TrimSpace(lang)
	if !slices.Contains(t.languages, lang) {
		lang = config.DefaultLanguage
	}
	tag := language.Make(lang)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = lang
	t.localizer = i18n.NewLocalizer(t.bundle, lang)
	t.printer = message.NewPrinter(tag)
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// Languages returns the codes of the loaded locales, sorted.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Msg translates a key, returning the key itself when it is missing.
func (t *Translator) Msg(key string) string {
	return t.Format(key, nil)
}

// Format translates a key with template data.
func (t *Translator) Format(key string, data map[string]any) string {
	t.mu.RLock()
	localizer := t.localizer
	t.mu.RUnlock()

	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Number formats an integer with the locale's digit grouping ("4,160").
func (t *Translator) Number(n int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.printer.Sprintf("%d", n)
}

// StatusLabel names a week status.
func (t *Translator) StatusLabel(s engine.Status) string {
	switch s {
	case engine.StatusLived:
		return t.Msg(config.TKeyStatusLived)
	case engine.StatusCurrent:
		return t.Msg(config.TKeyStatusCurrent)
	default:
		return t.Msg(config.TKeyStatusFuture)
	}
}

// WeekLabel is the accessible label of a cell, "Week N, status" with N 1-based.
func (t *Translator) WeekLabel(c engine.WeekCell) string {
	return t.Format(config.TKeyWeekLabel, map[string]any{
		"Week":   t.Number(c.Index + 1),
		"Status": t.StatusLabel(c.Status),
	})
}

// EventSummary titles a calendar event, "Week N of T".
func (t *Translator) EventSummary(week, total int) string {
	return t.Format(config.TKeyEventWeek, map[string]any{
		"Week":  t.Number(week),
		"Total": t.Number(total),
	})
}

// LifespanLabel renders "80 years".
func (t *Translator) LifespanLabel(years int) string {
	return t.Format(config.TKeyFmtYears, map[string]any{"Years": years})
}

// ValidationMessage maps a profile validation error to its user-facing text.
// Parse failures and too-old dates share the generic invalid-date message.
func (t *Translator) ValidationMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrBirthDateMissing):
		return t.Msg(config.TKeyErrBirthMissing)
	case errors.Is(err, engine.ErrBirthDateFuture):
		return t.Msg(config.TKeyErrBirthFuture)
	case errors.Is(err, engine.ErrLifespanRange):
		return t.Msg(config.TKeyErrLifespan)
	default:
		return t.Msg(config.TKeyErrBirthInvalid)
	}
}
