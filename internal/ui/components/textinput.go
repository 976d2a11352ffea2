package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/delectable/internal/ui/theme"
)

// Validity is the border state of a TextInput.
type Validity int

const (
	Untouched Validity = iota
	Valid
	Invalid
)

// TextInput wraps bubbles/textinput with a validity border.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	Validity    Validity
}

// NewTextInput creates a blurred text input holding value. numericOnly
// limits typing to digits, sign and decimal point.
func NewTextInput(placeholder, value string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.SetValue(value)

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. changed reports an edit of the value.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd, bool) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && len(kmsg.Text) == 1 {
			c := kmsg.Text[0]
			if (c < '0' || c > '9') && c != '-' && c != '.' {
				return t, nil, false
			}
		}
	}

	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd, t.Model.Value() != before
}

// View renders the input inside a border coloured by its validity.
func (t TextInput) View() string {
	style := theme.InputNeutral
	switch t.Validity {
	case Valid:
		style = theme.InputValid
	case Invalid:
		style = theme.InputInvalid
	}
	return style.Render(t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
