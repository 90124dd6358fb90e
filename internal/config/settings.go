package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
// Precedence: flags > LIFEWEEKS_* environment > config.toml > defaults.
type Settings struct {
	StoreBackend    string
	StorePath       string
	Language        string
	Lifespan        int
	ServerEnabled   bool
	ServerPort      string
	RefreshInterval time.Duration
	WeeksAhead      int

	// ConfigFile is the file actually read, empty when running on defaults.
	ConfigFile string
}

// DefaultConfigDir returns <UserConfigDir>/go-lifeweeks, falling back to ~/.go-lifeweeks.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppDirName)
	}
	if dir, err := homedir.Expand(FallbackConfigDir); err == nil {
		return dir
	}
	return "." + AppDirName
}

// LoadSettings reads the settings into v. An empty path searches the default
// config directory, where a missing file is not an error.
func LoadSettings(v *viper.Viper, path string) (Settings, error) {
	if v == nil {
		v = viper.New()
	}

	dir := DefaultConfigDir()
	v.SetDefault(KeyStoreBackend, StoreBackendFile)
	v.SetDefault(KeyStorePath, filepath.Join(dir, ProfileFileName))
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyLifespan, DefaultLifespanYears)
	v.SetDefault(KeyServerEnabled, false)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerRefresh, DefaultRefreshMin)
	v.SetDefault(KeyCalendarWeeks, DefaultWeeksAhead)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
	}

	storePath, err := homedir.Expand(v.GetString(KeyStorePath))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}

	s := Settings{
		StoreBackend:    strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend))),
		StorePath:       storePath,
		Language:        v.GetString(KeyLanguage),
		Lifespan:        v.GetInt(KeyLifespan),
		ServerEnabled:   v.GetBool(KeyServerEnabled),
		ServerPort:      strings.TrimSpace(v.GetString(KeyServerPort)),
		RefreshInterval: time.Duration(v.GetInt(KeyServerRefresh)) * time.Minute,
		WeeksAhead:      v.GetInt(KeyCalendarWeeks),
		ConfigFile:      v.ConfigFileUsed(),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field against its accepted range.
func (s Settings) Validate() error {
	if !slices.Contains(StoreBackends, s.StoreBackend) {
		return fmt.Errorf("%s: %q", ErrStoreBackend, s.StoreBackend)
	}
	if s.Lifespan < MinLifespanYears || s.Lifespan > MaxLifespanYears {
		return errors.New(ErrLifespanRange)
	}
	if err := ValidatePort(s.ServerPort); err != nil {
		return err
	}
	if s.RefreshInterval <= 0 {
		return errors.New(ErrRefreshInterval)
	}
	if s.WeeksAhead < 1 || s.WeeksAhead > MaxWeeksAhead {
		return errors.New(ErrWeeksAhead)
	}
	return nil
}

// ValidatePort accepts a decimal TCP port in [MinPort, MaxPort].
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
