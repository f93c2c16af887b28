package domain

// AppSettings holds user-level application settings.
type AppSettings struct {
	// DataDir is the directory holding the database file.
	// Empty means the default location.
	DataDir string

	// Verbose enables debug logging to stderr.
	Verbose bool
}

// DefaultAppSettings returns the settings used when no config file exists.
func DefaultAppSettings() AppSettings {
	return AppSettings{}
}
