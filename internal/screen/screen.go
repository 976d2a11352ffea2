package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/delectable/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderInfoProvider is implemented by screens that show context, such as
// the patient code and visit day, at the right of the header.
type HeaderInfoProvider interface {
	HeaderInfo() string
}

// BackHandler is implemented by screens that consume Esc themselves when
// they are at the bottom of the stack.
type BackHandler interface {
	HandlesBack() bool
}
