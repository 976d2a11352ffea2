package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/untillpro/goutils/logger"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/submission"
)

// Session is one user's questionnaire run. It owns the answer store, the
// visibility state and the navigator; nothing is shared between sessions.
type Session struct {
	// ID is a UUID identifying this session in the submission log.
	ID string

	cat   *catalog.Catalog
	state *State
	nav   *Navigator

	caseID string
	day    *int

	// caseHint and dayHint hold the border state of the two home fields.
	caseHint Hint
	dayHint  Hint

	lastStatus string
}

// New starts a session on the home form with every answer unanswered.
func New(cat *catalog.Catalog, g *branching.Graph) *Session {
	return &Session{
		ID:    uuid.New().String(),
		cat:   cat,
		state: NewState(cat, g),
		nav:   NewNavigator(cat.FormIDs()),
	}
}

// Catalog returns the catalog the session runs on.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Navigator returns the page navigator.
func (s *Session) Navigator() *Navigator { return s.nav }

// Fields returns every catalog field name in order.
func (s *Session) Fields() []string { return s.state.Fields() }

// Answer returns the stored value of a field. The home fields report the
// case id and visit day.
func (s *Session) Answer(field string) any {
	switch field {
	case catalog.PatientCodeField:
		if s.caseID == "" {
			return nil
		}
		return s.caseID
	case catalog.VisitDayField:
		if s.day == nil {
			return nil
		}
		return *s.day
	}
	return s.state.Answer(field)
}

// Hidden reports whether branching logic hides a field.
func (s *Session) Hidden(field string) bool { return s.state.Hidden(field) }

// CaseID returns the patient code, "" when not entered.
func (s *Session) CaseID() string { return s.caseID }

// VisitDay returns the selected visit day.
func (s *Session) VisitDay() (int, bool) {
	if s.day == nil {
		return 0, false
	}
	return *s.day, true
}

// HomeHint returns the border state of a home field.
func (s *Session) HomeHint(field string) Hint {
	switch field {
	case catalog.PatientCodeField:
		return s.caseHint
	case catalog.VisitDayField:
		return s.dayHint
	}
	return HintNeutral
}

// LastStatus is the message of the most recent submission attempt.
func (s *Session) LastStatus() string { return s.lastStatus }

// Apply is the single entry point for renderer input events. The home
// fields are routed to SetCaseID and SelectDay; every other field goes to
// the answer store.
func (s *Session) Apply(field string, raw any) AnswerChangeResult {
	switch field {
	case catalog.PatientCodeField:
		return AnswerChangeResult{Hint: s.SetCaseID(raw)}
	case catalog.VisitDayField:
		return AnswerChangeResult{Hint: s.SelectDay(raw)}
	}
	return s.state.ApplyAnswer(field, raw)
}

// SetCaseID stores the patient code.
func (s *Session) SetCaseID(raw any) Hint {
	s.caseID = ""
	if raw != nil {
		s.caseID = strings.TrimSpace(fmt.Sprint(raw))
	}
	s.caseHint = HintValid
	if s.caseID == "" {
		s.caseHint = HintInvalid
	}
	return s.caseHint
}

// SelectDay changes the visit day. A change of value clears every answer
// and recomputes the available forms; an invalid day leaves only the
// home form.
func (s *Session) SelectDay(raw any) Hint {
	day := parseDay(raw)
	if sameDay(day, s.day) && s.dayHint != HintNeutral {
		return s.dayHint
	}

	s.day = day
	s.state.Reset()
	s.lastStatus = ""
	s.dayHint = s.nav.SetDay(day)
	if s.dayHint == HintInvalid {
		s.day = nil
	}
	logger.Verbose(fmt.Sprintf("visit day %v: forms %v", raw, s.nav.Available()))
	return s.dayHint
}

// Reset clears every answer and recomputes visibility. The case id and
// visit day are kept.
func (s *Session) Reset() {
	s.state.Reset()
	s.lastStatus = ""
}

// Next advances the navigator. On the last form it submits instead and
// returns the submission outcome.
func (s *Session) Next(ctx context.Context, asm *submission.Assembler) (Move, *submission.Result, error) {
	move := s.nav.Next()
	if move != MoveSubmit {
		return move, nil, nil
	}
	res, err := s.Submit(ctx, asm)
	return move, res, err
}

// Submit assembles and sends the current record.
func (s *Session) Submit(ctx context.Context, asm *submission.Assembler) (*submission.Result, error) {
	res, err := asm.Submit(ctx, s.state, s.caseID)
	s.RecordOutcome(res, err)
	return res, err
}

// Record builds the payload for the current answers without sending it.
// Renderers that send asynchronously snapshot with Record first.
func (s *Session) Record() (submission.Record, error) {
	return submission.BuildRecord(s.state, s.caseID)
}

// RecordOutcome stores the status message of a submission attempt.
func (s *Session) RecordOutcome(res *submission.Result, err error) {
	s.lastStatus = submission.Status(res, err)
}

// parseDay converts a renderer value into a visit day, nil if it is not
// an integer.
func parseDay(raw any) *int {
	switch v := Normalize(raw).(type) {
	case int:
		return &v
	case int64:
		d := int(v)
		return &d
	case float64:
		if Matches(v, int(v)) {
			d := int(v)
			return &d
		}
	case string:
		if d, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &d
		}
	}
	return nil
}

func sameDay(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
