// Package store persists the submission audit log in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/untillpro/goutils/logger"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// pragmas tune SQLite for a single local writer. journal_mode has no
// effect on in-memory databases.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// Store is the SQLite-backed submission audit log.
type Store struct {
	path string
	db   *sql.DB
	drv  *entsql.Driver
}

// Open opens (creating if needed) the database at path and migrates the
// submissions table.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %s: %w", p, err)
		}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	logger.Verbose("submission log opened at " + path)
	return &Store{path: path, db: db, drv: drv}, nil
}

// Path is the database location the store was opened with.
func (s *Store) Path() string { return s.path }

// DB exposes the raw handle.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	return s.drv.Close()
}

// SubmissionRepo returns the repository over the submissions table.
func (s *Store) SubmissionRepo() SubmissionRepo {
	return &submissionRepo{db: s.db}
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DELECTABLE_DB environment variable
// 2. $XDG_DATA_HOME/delectable/delectable.db
// 3. ~/.local/share/delectable/delectable.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DELECTABLE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "delectable", "delectable.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
