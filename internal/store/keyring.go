package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/zalando/go-keyring"
)

// KeyringStore keeps the record as a JSON secret in the OS keyring
// (Keychain, Secret Service, Credential Manager).
type KeyringStore struct {
	service string
}

var _ Store = (*KeyringStore)(nil)

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Load decodes the keyring entry. An absent keyring entry reports ok == false.
func (s *KeyringStore) Load(ctx context.Context) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	raw, err := keyring.Get(s.service, config.StorageKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	rec, err := decodeJSON(raw)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Save replaces the keyring entry.
func (s *KeyringStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeJSON(rec)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.service, config.StorageKey, raw); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	return nil
}

// Clear removes the keyring entry. Clearing twice is not an error.
func (s *KeyringStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := keyring.Delete(s.service, config.StorageKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%s: %w", config.ErrStoreClear, err)
	}
	return nil
}
