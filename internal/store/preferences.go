package store

import (
	"context"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// PreferencesStore keeps the record as a JSON string in the Fyne app
// preferences, the desktop counterpart of browser local storage.
type PreferencesStore struct {
	prefs fyne.Preferences
}

var _ Store = (*PreferencesStore)(nil)

func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Load decodes the preference. An absent preference reports ok == false.
func (s *PreferencesStore) Load(ctx context.Context) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	raw := s.prefs.String(config.StorageKey)
	if raw == "" {
		return Record{}, false, nil
	}
	rec, err := decodeJSON(raw)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Save replaces the preference.
func (s *PreferencesStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeJSON(rec)
	if err != nil {
		return err
	}
	s.prefs.SetString(config.StorageKey, raw)
	return nil
}

// Clear removes the preference. Clearing twice is not an error.
func (s *PreferencesStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.prefs.RemoveValue(config.StorageKey)
	return nil
}
