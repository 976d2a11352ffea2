package session

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
)

// AnswerChangeResult is the outcome of one answer event.
type AnswerChangeResult struct {
	// Changed lists dependents whose hidden flag flipped, in catalog order
	// of their edges. Empty when nothing changed.
	Changed []string
	Hint    Hint
}

// Hidden reports whether field is currently hidden by its branching logic.
// Fields without logic are never hidden.
func (s *State) Hidden(field string) bool {
	return s.hidden[field]
}

// ApplyAnswer stores the normalized value of field and re-evaluates the
// fields that reference it. Only edges rooted at field are evaluated; a
// dependent that becomes hidden does not cascade to its own dependents.
func (s *State) ApplyAnswer(field string, raw any) AnswerChangeResult {
	if !s.known[field] {
		logger.Warning(fmt.Sprintf("answer for unknown field %q ignored", field))
		return AnswerChangeResult{Hint: HintInvalid}
	}

	v := Normalize(raw)
	s.answers[field] = v
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("answer %s = %v", field, v))
	}

	var changed []string
	for _, e := range s.graph.Dependents(field) {
		hidden := !Matches(v, e.Expected)
		if s.hidden[e.Dependent] != hidden {
			changed = append(changed, e.Dependent)
		}
		s.hidden[e.Dependent] = hidden
	}

	return AnswerChangeResult{Changed: changed, Hint: hintFor(v)}
}

// Reset clears every answer. A field with branching logic starts hidden
// since an unanswered reference never matches.
func (s *State) Reset() {
	for _, name := range s.order {
		s.answers[name] = nil
		_, gated := s.graph.EdgeOf(name)
		s.hidden[name] = gated
	}
}
