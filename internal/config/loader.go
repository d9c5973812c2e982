package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if STREAKS_CONFIG is set
//  3. env (prefix STREAKS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STREAKS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: STREAKS_DB_PATH, STREAKS_CALENDAR_WEEKS, ...
	// Keys map to the koanf tags with underscores preserved.
	envProvider := env.Provider("STREAKS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "streaks_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.CalendarWeeks <= 0 {
		return nil, fmt.Errorf("%w: calendar_weeks must be positive", ErrInvalidConfig)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
