// Package questionnaire is the terminal screen that walks a session
// through its forms.
package questionnaire

import (
	"context"
	"fmt"
	"math"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/form"
	"github.com/abhisek/delectable/internal/router"
	"github.com/abhisek/delectable/internal/screen"
	"github.com/abhisek/delectable/internal/screens/forms"
	"github.com/abhisek/delectable/internal/screens/history"
	"github.com/abhisek/delectable/internal/session"
	"github.com/abhisek/delectable/internal/store"
	"github.com/abhisek/delectable/internal/submission"
	"github.com/abhisek/delectable/internal/ui/components"
	"github.com/abhisek/delectable/internal/ui/layout"
)

// Deps are the long-lived collaborators shared by every session.
type Deps struct {
	Catalog *catalog.Catalog
	Graph   *branching.Graph
	Client  submission.Client
	// Repo is the submission log; nil disables auditing and history.
	Repo store.SubmissionRepo
	Form form.Config
}

type controlKind int

const (
	controlText controlKind = iota
	controlChoice
	controlSlider
	controlPrev
	controlNext
)

// control is one stop of the focus ring.
type control struct {
	kind   controlKind
	field  form.Field
	input  components.TextInput
	choice components.ChoiceList
	slider components.Slider
	button components.Button
}

// QuestionnaireScreen renders the current page of a session and routes
// input events to it.
type QuestionnaireScreen struct {
	deps Deps
	sess *session.Session
	asm  *submission.Assembler

	page     *form.Page
	controls []control
	focus    int
	hints    map[string]session.Hint

	submitting bool
	errMsg     string
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.HeaderInfoProvider = (*QuestionnaireScreen)(nil)
var _ screen.BackHandler = (*QuestionnaireScreen)(nil)

// New starts a fresh session on the home page.
func New(d Deps) *QuestionnaireScreen {
	sess := session.New(d.Catalog, d.Graph)

	client := d.Client
	if d.Repo != nil {
		client = submission.WithAudit(client, d.Repo, sess.ID)
	}

	s := &QuestionnaireScreen{
		deps:  d,
		sess:  sess,
		asm:   submission.NewAssembler(client),
		hints: make(map[string]session.Hint),
	}
	s.rebuild(false)
	return s
}

// Session returns the session driven by this screen.
func (s *QuestionnaireScreen) Session() *session.Session {
	return s.sess
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return s.syncFocus()
}

func (s *QuestionnaireScreen) Title() string {
	if s.page == nil || s.page.Title == "" {
		return s.sess.Navigator().Current()
	}
	return s.page.Title
}

func (s *QuestionnaireScreen) HeaderInfo() string {
	id := s.sess.CaseID()
	day, ok := s.sess.VisitDay()
	switch {
	case id != "" && ok:
		return fmt.Sprintf("%s · day %d", id, day)
	case id != "":
		return id
	case ok:
		return fmt.Sprintf("day %d", day)
	}
	return ""
}

func (s *QuestionnaireScreen) HandlesBack() bool { return true }

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	nav := s.sess.Navigator()
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if c := s.focused(); c != nil && (c.kind == controlChoice || c.kind == controlSlider) {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	}
	if nav.CanGoForward() {
		hints = append(hints, layout.KeyHint{Key: "PgDn", Description: nav.NextLabel()})
	}
	if nav.CanGoBack() {
		hints = append(hints, layout.KeyHint{Key: "PgUp", Description: "Previous"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+F", Description: "Forms"})
	if s.deps.Repo != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case navigateMsg:
		if msg.forward {
			return s.next()
		}
		return s.previous()

	case submitDoneMsg:
		s.submitting = false
		s.sess.RecordOutcome(msg.Result, msg.Err)
		s.rebuild(true)
		return s, nil

	case forms.SelectedMsg:
		if s.sess.Navigator().Goto(msg.FormID) {
			s.rebuild(false)
			return s, s.syncFocus()
		}
		return s, nil

	case forms.NewSessionMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: New(s.deps)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionnaireScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	case "pgdown", "ctrl+n":
		return s.next()
	case "pgup", "ctrl+p", "esc":
		return s.previous()
	case "ctrl+f":
		picker := forms.New(s.deps.Catalog, s.sess.Navigator())
		return s, router.Push(picker)
	case "ctrl+r":
		if s.deps.Repo == nil {
			return s, nil
		}
		h := history.New(s.deps.Repo)
		return s, router.Push(h)
	}

	c := s.focused()
	if c == nil {
		return s, nil
	}

	switch c.kind {
	case controlText:
		if msg.String() == "enter" {
			return s, s.moveFocus(1)
		}
		var cmd tea.Cmd
		var changed bool
		c.input, cmd, changed = c.input.Update(msg)
		if changed {
			s.apply(c.field, form.Coerce(c.field.Widget, c.input.Value()))
		}
		return s, cmd

	case controlChoice:
		var changed bool
		c.choice, changed = c.choice.Update(msg)
		if changed {
			s.apply(c.field, c.field.Choices[c.choice.Selected].Code)
		}

	case controlSlider:
		var changed bool
		c.slider, changed = c.slider.Update(msg)
		if changed {
			s.apply(c.field, sliderValue(*c.slider.Value))
		}

	case controlPrev, controlNext:
		var cmd tea.Cmd
		c.button, cmd = c.button.Update(msg)
		return s, cmd
	}
	return s, nil
}

// apply sends one answer event to the session and refreshes the page so
// visibility and hints follow.
func (s *QuestionnaireScreen) apply(f form.Field, v any) {
	res := s.sess.Apply(f.Name, v)
	if f.Name == catalog.VisitDayField {
		s.hints = make(map[string]session.Hint)
	}
	s.hints[f.Name] = res.Hint
	s.rebuild(true)
}

func (s *QuestionnaireScreen) next() (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}
	switch s.sess.Navigator().Next() {
	case session.MoveAdvance:
		s.rebuild(false)
		return s, s.syncFocus()
	case session.MoveSubmit:
		return s.submit()
	}
	return s, nil
}

func (s *QuestionnaireScreen) previous() (screen.Screen, tea.Cmd) {
	if s.sess.Navigator().Previous() == session.MoveBack {
		s.rebuild(false)
		return s, s.syncFocus()
	}
	return s, nil
}

// submit snapshots the record now and sends it in the background. A
// record that cannot be built is reported without a network call.
func (s *QuestionnaireScreen) submit() (screen.Screen, tea.Cmd) {
	rec, err := s.sess.Record()
	if err != nil {
		s.sess.RecordOutcome(nil, err)
		s.rebuild(true)
		return s, nil
	}

	s.submitting = true
	s.rebuild(true)
	asm := s.asm
	return s, func() tea.Msg {
		res, err := asm.Send(context.Background(), rec)
		return submitDoneMsg{Result: res, Err: err}
	}
}

// rebuild materializes the current page and lays out its controls. With
// keepInputs, text inputs of the same page keep their editing state.
func (s *QuestionnaireScreen) rebuild(keepInputs bool) {
	nav := s.sess.Navigator()
	page, err := form.Materialize(s.deps.Catalog, s.sess, nav.Current(), s.deps.Form)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""

	prevInputs := make(map[string]components.TextInput)
	var focusName string
	if keepInputs && s.page != nil && s.page.FormID == page.FormID {
		for _, c := range s.controls {
			if c.kind == controlText {
				prevInputs[c.field.Name] = c.input
			}
		}
	}
	if c := s.focused(); c != nil && keepInputs {
		focusName = c.field.Name
		if c.kind == controlPrev || c.kind == controlNext {
			focusName = fmt.Sprintf("#%d", c.kind)
		}
	}

	s.page = page
	s.controls = s.controls[:0]
	for _, f := range page.Fields {
		if !f.Renderable() || !f.Widget.Interactive() {
			continue
		}
		s.controls = append(s.controls, s.controlFor(f, prevInputs))
	}
	s.controls = append(s.controls, s.buttons()...)

	s.focus = 0
	if !keepInputs {
		return
	}
	for i, c := range s.controls {
		name := c.field.Name
		if c.kind == controlPrev || c.kind == controlNext {
			name = fmt.Sprintf("#%d", c.kind)
		}
		if name == focusName {
			s.focus = i
			break
		}
	}
	s.syncFocus()
}

func (s *QuestionnaireScreen) controlFor(f form.Field, prev map[string]components.TextInput) control {
	c := control{field: f}
	switch {
	case f.Widget.SingleSelect():
		c.kind = controlChoice
		labels := make([]string, len(f.Choices))
		selected := -1
		for i, ch := range f.Choices {
			labels[i] = ch.Label
			if session.Matches(f.Value, ch.Code) {
				selected = i
			}
		}
		c.choice = components.NewChoiceList(labels, selected)

	case f.Widget == catalog.WidgetSlider:
		c.kind = controlSlider
		lo, hi, step := 0.0, 100.0, 1.0
		if b := f.Bounds; b != nil {
			if b.Min != nil {
				lo = *b.Min
			}
			if b.Max != nil {
				hi = *b.Max
			}
			step = b.Step
		}
		var v *float64
		if n, ok := asFloat(f.Value); ok {
			v = &n
		}
		c.slider = components.NewSlider(lo, hi, step, v, f.SliderLabels, 60)

	default:
		c.kind = controlText
		if in, ok := prev[f.Name]; ok {
			c.input = in
		} else {
			c.input = components.NewTextInput(placeholder(f.Widget), form.FormatValue(f.Value), f.Widget == catalog.WidgetNumeric, 0)
		}
		c.input.Validity = validity(s.hintOf(f.Name))
	}
	return c
}

func (s *QuestionnaireScreen) buttons() []control {
	nav := s.sess.Navigator()
	navCmd := func(forward bool) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return navigateMsg{forward: forward} }
		}
	}

	prev := components.NewButton("Previous", false, navCmd(false))
	prev.Disabled = !nav.CanGoBack()

	label := nav.NextLabel()
	if s.submitting {
		label = "Submitting..."
	}
	next := components.NewButton(label, false, navCmd(true))
	next.Disabled = !nav.CanGoForward() || s.submitting

	return []control{
		{kind: controlPrev, button: prev},
		{kind: controlNext, button: next},
	}
}

func (s *QuestionnaireScreen) hintOf(field string) session.Hint {
	switch field {
	case catalog.PatientCodeField, catalog.VisitDayField:
		return s.sess.HomeHint(field)
	}
	return s.hints[field]
}

func (s *QuestionnaireScreen) focused() *control {
	if s.focus < 0 || s.focus >= len(s.controls) {
		return nil
	}
	return &s.controls[s.focus]
}

func (s *QuestionnaireScreen) moveFocus(delta int) tea.Cmd {
	if len(s.controls) == 0 {
		return nil
	}
	s.focus = (s.focus + delta + len(s.controls)) % len(s.controls)
	return s.syncFocus()
}

// syncFocus applies the focus index to every control.
func (s *QuestionnaireScreen) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.controls {
		c := &s.controls[i]
		on := i == s.focus
		switch c.kind {
		case controlText:
			if on {
				cmd = c.input.Focus()
			} else {
				c.input.Blur()
			}
		case controlChoice:
			c.choice.Focused = on
		case controlSlider:
			c.slider.Focused = on
		case controlPrev, controlNext:
			c.button.Active = on
		}
	}
	return cmd
}

func validity(h session.Hint) components.Validity {
	switch h {
	case session.HintValid:
		return components.Valid
	case session.HintInvalid:
		return components.Invalid
	}
	return components.Untouched
}

func placeholder(w catalog.WidgetType) string {
	switch w {
	case catalog.WidgetDate:
		return "YYYY-MM-DD"
	case catalog.WidgetNumeric:
		return "number"
	}
	return ""
}

// sliderValue stores whole slider positions as ints so they compare
// against choice codes.
func sliderValue(v float64) any {
	if v == math.Trunc(v) {
		return int(v)
	}
	return v
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
