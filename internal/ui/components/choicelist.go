package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/delectable/internal/ui/theme"
)

// ChoiceList is a single-select option row. Selected is -1 until the user
// picks an option.
type ChoiceList struct {
	Options  []string
	Selected int
	Focused  bool
}

// NewChoiceList creates a choice list with the option at selected picked,
// or none when selected is out of range.
func NewChoiceList(options []string, selected int) ChoiceList {
	if selected < 0 || selected >= len(options) {
		selected = -1
	}
	return ChoiceList{Options: options, Selected: selected}
}

// Update moves the selection with left/right; space cycles through the
// options. The bool reports a new selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	prev := c.Selected
	switch kmsg.String() {
	case "left", "h":
		if c.Selected > 0 {
			c.Selected--
		} else if c.Selected < 0 {
			c.Selected = 0
		}
	case "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "space", " ":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, c.Selected != prev
}

// View renders the options on one line with the selection marked.
func (c ChoiceList) View() string {
	parts := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		mark := "( )"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Selected {
			mark = "(•)"
			style = theme.Selected
			if c.Focused {
				style = theme.Focused
			}
		}
		parts = append(parts, style.Render(mark+" "+opt))
	}
	return strings.Join(parts, "  ")
}
