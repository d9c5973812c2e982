// Package config defines application configuration and loading.
//
// Conventions:
// - Defaults come from New; Load layers an optional file and env on top.
// - External errors are wrapped via this package's sentinel errors.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath locates the SQLite entry store. Empty means the default
	// location under the user's home directory.
	DBPath string `koanf:"db_path"`

	// CalendarWeeks sets the activity heatmap window.
	CalendarWeeks int `koanf:"calendar_weeks"`

	// MetricsAddr, when non-empty, enables the local Prometheus
	// exposition listener, e.g. "localhost:9090". Off by default; the
	// application makes no other network connections.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		DBPath:        defaultDBPath(),
		CalendarWeeks: 52,
		MetricsAddr:   "",
	}
}

// defaultDBPath places the store under ~/.local/share/streaks, falling back
// to the working directory when the home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "streaks.db"
	}
	return filepath.Join(home, ".local", "share", "streaks", "streaks.db")
}
