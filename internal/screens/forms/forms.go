// Package forms is the form picker: a menu of the forms available for the
// selected visit day.
package forms

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/router"
	"github.com/abhisek/delectable/internal/screen"
	"github.com/abhisek/delectable/internal/session"
	"github.com/abhisek/delectable/internal/ui/components"
	"github.com/abhisek/delectable/internal/ui/layout"
	"github.com/abhisek/delectable/internal/ui/theme"
)

// SelectedMsg is delivered to the screen below the picker after the user
// chooses a form.
type SelectedMsg struct {
	FormID string
}

// NewSessionMsg asks the questionnaire to start over with a new session.
type NewSessionMsg struct{}

// FormsScreen lists the available forms.
type FormsScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*FormsScreen)(nil)
var _ screen.KeyHintProvider = (*FormsScreen)(nil)

// New builds the picker from the navigator's available forms with the
// current form selected.
func New(cat *catalog.Catalog, nav *session.Navigator) *FormsScreen {
	var items []components.MenuItem
	current := 0
	for i, id := range nav.Available() {
		label := id
		if f, ok := cat.Form(id); ok && f.Title != "" {
			label = f.Title
		}
		detail := ""
		if n := len(cat.FieldsOf(id)); n > 0 {
			detail = fmt.Sprintf("%d questions", n)
		}
		if id == nav.Current() {
			current = i
			detail = "current"
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: detail,
			Action: pick(SelectedMsg{FormID: id}),
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Start a new session",
		Detail: "clears every answer",
		Action: pick(NewSessionMsg{}),
	})

	m := components.NewMenu(items)
	m.Select(current)
	return &FormsScreen{menu: m}
}

// pick closes the picker and then delivers msg to the screen below.
func pick(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return tea.Sequence(
			router.Pop,
			func() tea.Msg { return msg },
		)
	}
}

func (f *FormsScreen) Init() tea.Cmd {
	return nil
}

func (f *FormsScreen) Title() string {
	return "Forms"
}

func (f *FormsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *FormsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	f.menu, cmd = f.menu.Update(msg)
	return f, cmd
}

func (f *FormsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := components.Card(f.menu.View(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Title.Render("Go to form")+"\n\n"+content)
}
