// Package store persists the profile record (birth date and lifespan) under a
// single key. Backends: a TOML file, the OS keyring, or Fyne preferences.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Record is the persisted form of a profile. BirthDate is an ISO-8601 UTC
// timestamp with millisecond precision, e.g. "1990-03-14T00:00:00.000Z".
type Record struct {
	BirthDate string `json:"birthDate" toml:"birthDate"`
	Lifespan  int    `json:"lifespan" toml:"lifespan"`
}

// Store reads and writes the single profile record.
// Load reports false when nothing is stored.
type Store interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// NewRecord converts a profile into its stored form.
func NewRecord(p engine.Profile) Record {
	return Record{
		BirthDate: p.BirthDate.UTC().Format(config.DateFormatISO),
		Lifespan:  p.Lifespan.Years(),
	}
}

// Profile parses and revalidates the record against now. A record that was
// valid when written can still fail here, e.g. once it is 150 years old.
func (r Record) Profile(now time.Time) (engine.Profile, error) {
	birth, err := time.Parse(time.RFC3339Nano, r.BirthDate)
	if err != nil {
		return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrRecordDecode, err)
	}
	return engine.NewProfile(birth.UTC(), r.Lifespan, now)
}

func encodeJSON(rec Record) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrRecordEncode, err)
	}
	return string(raw), nil
}

func decodeJSON(raw string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, fmt.Errorf("%s: %w", config.ErrRecordDecode, err)
	}
	return rec, nil
}

// Open builds the backend named by settings. prefs is only needed for the
// preferences backend and may be nil otherwise.
func Open(settings config.Settings, prefs fyne.Preferences) (Store, error) {
	var st Store
	location := config.KeyringService
	switch settings.StoreBackend {
	case config.StoreBackendFile, "":
		st = NewFileStore(settings.StorePath)
		location = settings.StorePath
	case config.StoreBackendKeyring:
		st = NewKeyringStore(config.KeyringService)
	case config.StoreBackendPreferences:
		if prefs == nil {
			return nil, fmt.Errorf("%s: %s", config.ErrStoreNeedsApp, settings.StoreBackend)
		}
		st = NewPreferencesStore(prefs)
		location = config.StorageKey
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrStoreBackend, settings.StoreBackend)
	}

	slog.Debug(config.MsgStoreOpened,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyBackend, settings.StoreBackend,
		config.LogKeyPath, location,
	)
	return st, nil
}
