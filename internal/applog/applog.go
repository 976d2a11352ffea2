// Package applog configures the process logger. While the terminal UI owns
// the screen, log lines go to a file instead of stderr.
package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/untillpro/goutils/logger"
)

// Config selects the log level and the file used while the UI runs.
type Config struct {
	Level string
	File  string
}

// DefaultConfig logs warnings and errors to delectable.log beside dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{
		Level: "warning",
		File:  filepath.Join(filepath.Dir(dbPath), "delectable.log"),
	}
}

// ConfigFromEnv reads DELECTABLE_LOG_LEVEL and DELECTABLE_LOG_FILE.
func ConfigFromEnv(dbPath string) Config {
	cfg := DefaultConfig(dbPath)
	if v := os.Getenv("DELECTABLE_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("DELECTABLE_LOG_FILE"); v != "" {
		cfg.File = v
	}
	return cfg
}

// Validate checks that the level is known and a file is set.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	if c.File == "" {
		return fmt.Errorf("log file path is required")
	}
	return nil
}

var levels = map[string]logger.TLogLevel{
	"none":    logger.LogLevelNone,
	"error":   logger.LogLevelError,
	"warning": logger.LogLevelWarning,
	"warn":    logger.LogLevelWarning,
	"info":    logger.LogLevelInfo,
	"verbose": logger.LogLevelVerbose,
	"debug":   logger.LogLevelVerbose,
	"trace":   logger.LogLevelTrace,
}

// ParseLevel maps a level name to a logger level. Names are case-insensitive.
func ParseLevel(s string) (logger.TLogLevel, error) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return logger.LogLevelNone, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// SetLevel applies a level name to the process logger.
func SetLevel(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	logger.SetLogLevel(l)
	return nil
}

// ToFile applies cfg and sends every log line to cfg.File until restore is
// called. restore closes the file and puts the previous printer back.
func ToFile(cfg Config) (restore func(), err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := ParseLevel(cfg.Level)
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	restoreLevel := logger.SetLogLevelWithRestore(level)
	prev := logger.PrintLine

	var mu sync.Mutex
	logger.PrintLine = func(_ logger.TLogLevel, line string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(f, line)
	}

	return func() {
		logger.PrintLine = prev
		restoreLevel()
		f.Close()
	}, nil
}
