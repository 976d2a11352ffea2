package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// openFileStore uses a private file so tests do not share rows.
func openFileStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file-based DB below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestJournalModeWAL(t *testing.T) {
	s := openFileStore(t)

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='submissions'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "submissions" {
		t.Errorf("table name = %q, want 'submissions'", name)
	}
}

func TestSubmissionAppendAndRecent(t *testing.T) {
	s := openFileStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	// Empty log.
	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("recent (empty) = %d entries, want 0", len(got))
	}

	base := time.Now().UTC().Truncate(time.Second)
	entries := []SubmissionEntry{
		{SessionID: "s1", CaseID: "PT001", FieldsWritten: 12, Success: true, LatencyMs: 310, CreatedAt: base},
		{SessionID: "s1", CaseID: "PT001", Success: false, ErrorMessage: "HTTP 500", LatencyMs: 90, CreatedAt: base.Add(time.Minute)},
		{SessionID: "s2", CaseID: "PT002", FieldsWritten: 3, Success: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i, e := range entries {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err = repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(got))
	}
	if got[0].CaseID != "PT002" {
		t.Errorf("newest case = %q, want PT002", got[0].CaseID)
	}
	if got[1].Success {
		t.Error("second entry should be the failed attempt")
	}
	if got[1].ErrorMessage != "HTTP 500" {
		t.Errorf("error message = %q, want %q", got[1].ErrorMessage, "HTTP 500")
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("created_at = %v, want %v", got[0].CreatedAt, base.Add(2*time.Minute))
	}

	all, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("recent all = %d entries, want 3", len(all))
	}
	if all[2].FieldsWritten != 12 {
		t.Errorf("oldest fields_written = %d, want 12", all[2].FieldsWritten)
	}
}

func TestSubmissionAppendDefaultsTimestamp(t *testing.T) {
	s := openFileStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := repo.Append(ctx, SubmissionEntry{SessionID: "s", CaseID: "c", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if got[0].CreatedAt.Before(before) {
		t.Errorf("created_at = %v, want after %v", got[0].CreatedAt, before)
	}
}

func TestSubmissionPrune(t *testing.T) {
	s := openFileStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.Append(ctx, SubmissionEntry{SessionID: "s", CaseID: "c", Success: true, FieldsWritten: i}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	deleted, err := repo.Prune(ctx, 5)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	all, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("remaining = %d, want 5", len(all))
	}
	if all[0].FieldsWritten != 6 {
		t.Errorf("newest fields_written = %d, want 6", all[0].FieldsWritten)
	}
}

func TestSubmissionPruneWithFewerThanKeep(t *testing.T) {
	s := openFileStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Append(ctx, SubmissionEntry{SessionID: "s", CaseID: "c"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	deleted, err := repo.Prune(ctx, 5)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestSubmissionPruneAll(t *testing.T) {
	s := openFileStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Append(ctx, SubmissionEntry{SessionID: "s", CaseID: "c"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	if _, err := repo.Prune(ctx, 0); err != nil {
		t.Fatalf("prune: %v", err)
	}
	all, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("remaining = %d, want 0", len(all))
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "audit.db")
	t.Setenv("DELECTABLE_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DELECTABLE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "delectable", "delectable.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
