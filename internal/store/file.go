package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// fileSchema holds the single record under its fixed key. Unknown keys are
// ignored, so the file carries no schema version.
type fileSchema struct {
	Data *Record `toml:"lifespan-tracker-data,omitempty"`
}

// FileStore keeps the record in a TOML file, replaced atomically on save.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the TOML file at path. The file and
// its directory are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the record. A missing file or a file without the record table
// reports ok == false and no error.
func (s *FileStore) Load(ctx context.Context) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrRecordDecode, err)
	}
	if file.Data == nil {
		return Record{}, false, nil
	}
	return *file.Data, true, nil
}

// Save replaces the stored record.
func (s *FileStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fileSchema{Data: &rec})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRecordEncode, err)
	}
	return s.write(data)
}

// Clear deletes the file. Clearing an absent record is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrStoreClear, err)
	}
	return nil
}

// write replaces the file through a temp file and rename, so a crash never
// leaves a truncated record behind.
func (s *FileStore) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tempFile, err := os.CreateTemp(dir, config.ProfileTempPattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tempFile.Chmod(config.FilePermUserRW); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	cleanup = false
	return nil
}
