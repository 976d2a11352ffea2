package catalog

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Config locates the two catalogs.
type Config struct {
	// FormsSource is a path or http(s) URL of the Form Catalog (.xlsx or .csv).
	FormsSource string
	// FieldsSource is a path or http(s) URL of the Field Catalog (.xlsx or .csv).
	FieldsSource string
	// Timeout bounds fetching both sources. Default: 30s.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("DELECTABLE_FORMS"); v != "" {
		cfg.FormsSource = v
	}
	if v := os.Getenv("DELECTABLE_FIELDS"); v != "" {
		cfg.FieldsSource = v
	}
	return cfg
}

// Validate checks that both sources are set.
func (c Config) Validate() error {
	if c.FormsSource == "" {
		return fmt.Errorf("forms catalog is required (--forms or DELECTABLE_FORMS)")
	}
	if c.FieldsSource == "" {
		return fmt.Errorf("fields catalog is required (--fields or DELECTABLE_FIELDS)")
	}
	return nil
}

// Load fetches, parses and validates both catalogs. Any failure is fatal
// to startup; no partial catalog is returned.
func Load(ctx context.Context, cfg Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	formsTable, err := ReadTable(ctx, cfg.FormsSource)
	if err != nil {
		return nil, fmt.Errorf("load forms catalog: %w", err)
	}
	fieldsTable, err := ReadTable(ctx, cfg.FieldsSource)
	if err != nil {
		return nil, fmt.Errorf("load fields catalog: %w", err)
	}

	forms, err := ParseForms(formsTable)
	if err != nil {
		return nil, fmt.Errorf("parse forms catalog: %w", err)
	}
	fields, err := ParseFields(fieldsTable)
	if err != nil {
		return nil, fmt.Errorf("parse fields catalog: %w", err)
	}

	return New(forms, fields)
}
