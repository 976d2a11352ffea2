// Package router keeps the stack of screens shown by the app. The
// questionnaire sits at the bottom; pickers and the history view are
// pushed over it.
package router

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/untillpro/goutils/logger"

	"github.com/abhisek/delectable/internal/screen"
)

// PushScreenMsg opens Screen over the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen, e.g. to start a
// fresh session.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Push returns a command that pushes s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns a command that pops the active screen.
func Pop() tea.Msg {
	return PopScreenMsg{}
}

// Router owns the screen stack. The stack never becomes empty.
type Router struct {
	screens []screen.Screen
}

// New creates a Router whose bottom screen is root.
func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.screens) - 1 }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	r.trace("push")
	return s.Init()
}

// Pop closes the active screen. The bottom screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if r.top() == 0 {
		return nil
	}
	r.screens[r.top()] = nil
	r.screens = r.screens[:r.top()]
	r.trace("pop")
	return nil
}

// Replace swaps the active screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.screens[r.top()] = s
	r.trace("replace")
	return s.Init()
}

// Active returns the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	return r.screens[r.top()]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.screens)
}

// Breadcrumb returns the titles of the open screens, bottom first.
func (r *Router) Breadcrumb() []string {
	titles := make([]string, len(r.screens))
	for i, s := range r.screens {
		titles[i] = s.Title()
	}
	return titles
}

// Update applies stack messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.screens[r.top()] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

func (r *Router) trace(op string) {
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("router %s: %s", op, strings.Join(r.Breadcrumb(), " > ")))
	}
}
