package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/delectable/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushPop(t *testing.T) {
	form := &stubScreen{title: "Symptoms"}
	picker := &stubScreen{title: "Forms"}
	r := New(form)

	r.Push(picker)
	assert.Equal(t, 2, r.Depth())
	assert.Same(t, picker, r.Active())
	assert.Equal(t, 1, picker.inits)

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, form, r.Active())

	r.Pop()
	assert.Equal(t, 1, r.Depth(), "bottom screen is never popped")
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		pushFirst bool
		wantDepth int
	}{
		{name: "bottom", wantDepth: 1},
		{name: "over another screen", pushFirst: true, wantDepth: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "Home"})
			if tt.pushFirst {
				r.Push(&stubScreen{title: "Forms"})
			}

			fresh := &stubScreen{title: "Home (new)"}
			r.Update(ReplaceScreenMsg{Screen: fresh})

			assert.Equal(t, tt.wantDepth, r.Depth())
			assert.Same(t, fresh, r.Active())
			assert.Equal(t, 1, fresh.inits)
		})
	}
}

func TestBreadcrumb(t *testing.T) {
	r := New(&stubScreen{title: "Symptoms"})
	assert.Equal(t, []string{"Symptoms"}, r.Breadcrumb())

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "History"}})
	assert.Equal(t, []string{"Symptoms", "History"}, r.Breadcrumb())
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "first"}
	top := &stubScreen{title: "second"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Equal(t, 1, top.updates)
	assert.Equal(t, 0, bottom.updates)
	assert.Equal(t, "second", r.View(80, 24))

	r.Update(PopScreenMsg{})
	assert.Equal(t, "first", r.View(80, 24))
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "Forms"}
	msg := Push(s)()
	push, ok := msg.(PushScreenMsg)
	require.True(t, ok)
	assert.Same(t, s, push.Screen)

	_, ok = Pop().(PopScreenMsg)
	assert.True(t, ok)
}
