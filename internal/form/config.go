package form

import (
	"os"
	"strconv"
)

// Config controls how pages are materialized.
type Config struct {
	// Numbering prefixes labels with "<form index>.<position>. ".
	Numbering bool
}

// DefaultConfig returns a Config with numbering off.
func DefaultConfig() Config {
	return Config{}
}

// ConfigFromEnv reads DELECTABLE_NUMBERING, falling back to defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("DELECTABLE_NUMBERING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Numbering = b
		}
	}
	return cfg
}
