package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/delectable/internal/router"
	"github.com/abhisek/delectable/internal/store"
)

type fakeRepo struct {
	entries []store.SubmissionEntry
	err     error
	limit   int
}

func (f *fakeRepo) Append(context.Context, store.SubmissionEntry) error { return nil }
func (f *fakeRepo) Recent(_ context.Context, limit int) ([]store.SubmissionEntry, error) {
	f.limit = limit
	return f.entries, f.err
}
func (f *fakeRepo) Prune(context.Context, int) (int64, error) { return 0, nil }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestHistoryShowsEntries(t *testing.T) {
	repo := &fakeRepo{entries: []store.SubmissionEntry{
		{SessionID: "s2", CaseID: "PT002", Success: false, ErrorMessage: "HTTP 403: bad token", CreatedAt: time.Now()},
		{SessionID: "s1", CaseID: "PT001", Success: true, FieldsWritten: 12, LatencyMs: 80, CreatedAt: time.Now()},
	}}
	s := New(repo)
	load(t, s)

	if repo.limit != Limit {
		t.Errorf("Recent limit = %d, want %d", repo.limit, Limit)
	}

	view := s.View(100, 30)
	for _, want := range []string{"PT001", "PT002", "12 fields", "failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "bad token") {
		t.Error("error message should only show when expanded")
	}

	s.Update(specialKey(tea.KeyEnter))
	if view := s.View(100, 30); !strings.Contains(view, "HTTP 403: bad token") {
		t.Error("expanded entry should show its error message")
	}
}

func TestHistoryNavigation(t *testing.T) {
	repo := &fakeRepo{entries: make([]store.SubmissionEntry, 3)}
	s := New(repo)
	load(t, s)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
	s.Update(specialKey(tea.KeyUp))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(&fakeRepo{})
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No submissions yet") {
		t.Error("expected empty view")
	}

	s = New(&fakeRepo{err: errors.New("database is locked")})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "database is locked") {
		t.Error("expected error view")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(&fakeRepo{})
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
