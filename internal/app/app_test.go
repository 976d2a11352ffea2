package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/delectable/internal/router"
	"github.com/abhisek/delectable/internal/screen"
	"github.com/abhisek/delectable/internal/ui/layout"
)

type stubScreen struct {
	title   string
	back    bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                   { return "body of " + s.title }
func (s *stubScreen) Title() string                          { return s.title }
func (s *stubScreen) HandlesBack() bool                      { return s.back }
func (s *stubScreen) HeaderInfo() string                     { return "PT001 · day 2" }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "PgDn", Description: "Next"}}
}

func sized(root screen.Screen) AppModel {
	m := NewAppModel(root)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func TestViewComposesFrame(t *testing.T) {
	m := sized(&stubScreen{title: "Symptoms"})
	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}

	content := m.render()
	for _, want := range []string{"Symptoms", "PT001 · day 2", "body of Symptoms", "PgDn"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestEscPopsOrForwards(t *testing.T) {
	root := &stubScreen{title: "root", back: true}
	m := sized(root)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if root.updates != 1 {
		t.Errorf("esc at the bottom should reach a BackHandler, updates = %d", root.updates)
	}

	m.router.Push(&stubScreen{title: "top"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc on a pushed screen should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscIgnoredWithoutBackHandler(t *testing.T) {
	root := &stubScreen{title: "root"}
	m := sized(root)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if root.updates != 0 {
		t.Error("esc should not reach a screen that does not handle it")
	}
}

func TestTooSmall(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "x"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
