package submission

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds the case-report-form API settings.
type Config struct {
	// APIURL is the REDCap API endpoint, e.g. https://redcap.example.org/api/.
	APIURL string
	// Token is the project API token.
	Token string
	// Timeout bounds a single submission request. Default: 30s.
	Timeout time.Duration
	// DryRun logs records instead of sending them.
	DryRun bool
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
	if v := os.Getenv("DELECTABLE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("DELECTABLE_API_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("DELECTABLE_DRY_RUN"); v == "1" || v == "true" {
		cfg.DryRun = true
	}
	return cfg
}

// Validate checks that an endpoint and token are set unless running dry.
func (c Config) Validate() error {
	if c.DryRun {
		return nil
	}
	if c.APIURL == "" {
		return fmt.Errorf("API URL is required (--api-url or DELECTABLE_API_URL)")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("API URL %q must be an http(s) URL", c.APIURL)
	}
	if c.Token == "" {
		return fmt.Errorf("API token is required (DELECTABLE_API_TOKEN)")
	}
	return nil
}

// NewClient returns the Client described by cfg.
func NewClient(cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DryRun {
		return DryRunClient{}, nil
	}
	return NewRedcapClient(cfg), nil
}
