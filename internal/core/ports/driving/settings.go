package driving

import "github.com/custodia-labs/todos/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Keys returns the recognised config keys.
	Keys() []string

	// ConfigPath returns the location of the settings file.
	ConfigPath() string
}
