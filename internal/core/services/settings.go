package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDataDir = "storage.data_dir"
	KeyVerbose = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if dir := s.configStore.GetString(KeyDataDir); dir != "" {
		settings.DataDir = dir
	}
	if _, ok := s.configStore.Get(KeyVerbose); ok {
		settings.Verbose = s.configStore.GetBool(KeyVerbose)
	}

	return &settings, nil
}

// Save persists application settings to the config file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(KeyDataDir, settings.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	if err := s.configStore.Set(KeyVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save verbose: %w", err)
	}
	return s.configStore.Save()
}

// Set updates a single setting from its string form and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	var val any
	switch key {
	case KeyDataDir:
		val = value
	case KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		val = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, val); err != nil {
		return err
	}
	return s.configStore.Save()
}

// Keys returns the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyDataDir, KeyVerbose}
	sort.Strings(keys)
	return keys
}

// ConfigPath returns the location of the settings file.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
