// Package history shows the submission log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/delectable/internal/router"
	"github.com/abhisek/delectable/internal/screen"
	"github.com/abhisek/delectable/internal/store"
	"github.com/abhisek/delectable/internal/ui/layout"
	"github.com/abhisek/delectable/internal/ui/theme"
)

// Limit is the number of attempts loaded.
const Limit = 50

type historyLoadedMsg struct {
	Entries []store.SubmissionEntry
	Err     error
}

// HistoryScreen lists recent submission attempts, newest first.
type HistoryScreen struct {
	repo     store.SubmissionRepo
	entries  []store.SubmissionEntry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SubmissionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.repo.Recent(context.Background(), Limit)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Submission history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No submissions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	focusLine := 0

	for i, e := range s.entries {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		outcome := fmt.Sprintf("%d fields", e.FieldsWritten)
		if !e.Success {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
			outcome = "failed"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
			focusLine = strings.Count(b.String(), "\n")
		}

		line := fmt.Sprintf("%s%s  %-12s  %-10s  %5d ms",
			prefix, e.CreatedAt.Local().Format("Jan 02 15:04"), caseLabel(e.CaseID), outcome, e.LatencyMs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+" "+mark))
		b.WriteString("\n")

		if s.expanded[i] {
			details := []string{"session " + e.SessionID}
			if e.ErrorMessage != "" {
				details = append(details, e.ErrorMessage)
			}
			for _, d := range details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return layout.Window(b.String(), focusLine, height)
}

func caseLabel(id string) string {
	if id == "" {
		return "(no code)"
	}
	return id
}
