// Package session holds the per-user questionnaire state: answers,
// branching visibility, page navigation and the case identifier.
package session

import (
	"math"
	"strings"
	"time"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
)

// DateLayout is the canonical form of stored dates.
const DateLayout = "2006-01-02"

// dateInputLayouts are accepted on input and rewritten to DateLayout.
var dateInputLayouts = []string{
	DateLayout,
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Hint is the border state shown next to an input.
type Hint int

const (
	HintNeutral Hint = iota // not touched yet
	HintValid
	HintInvalid
)

func (h Hint) String() string {
	switch h {
	case HintValid:
		return "valid"
	case HintInvalid:
		return "invalid"
	default:
		return "neutral"
	}
}

// hintFor returns HintInvalid iff v is unanswered.
func hintFor(v any) Hint {
	if v == nil {
		return HintInvalid
	}
	return HintValid
}

// Normalize converts a raw renderer value into its stored form. nil is
// the only unanswered value: empty and blank strings become nil. Date
// strings and time values are rewritten as YYYY-MM-DD. Numbers are kept
// as they are.
func Normalize(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range dateInputLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(DateLayout)
			}
		}
		return v
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v.Format(DateLayout)
	case *int:
		if v == nil {
			return nil
		}
		return *v
	default:
		return raw
	}
}

// Matches reports whether a stored answer equals an expected choice code.
// Integers and whole floats compare numerically; strings and unanswered
// never match.
func Matches(v any, expected int) bool {
	switch n := v.(type) {
	case int:
		return n == expected
	case int64:
		return n == int64(expected)
	case int32:
		return int64(n) == int64(expected)
	case float64:
		return n == math.Trunc(n) && n == float64(expected)
	case float32:
		return float64(n) == float64(expected)
	default:
		return false
	}
}

// State is the answer store plus the visibility state derived from it.
// It is not safe for concurrent use; one event is applied at a time.
type State struct {
	graph   *branching.Graph
	order   []string
	known   map[string]bool
	answers map[string]any
	hidden  map[string]bool
}

// NewState builds an all-unanswered state for every catalog field.
func NewState(cat *catalog.Catalog, g *branching.Graph) *State {
	fields := cat.Fields()
	s := &State{
		graph:   g,
		order:   make([]string, len(fields)),
		known:   make(map[string]bool, len(fields)),
		answers: make(map[string]any, len(fields)),
		hidden:  make(map[string]bool, len(fields)),
	}
	for i, f := range fields {
		s.order[i] = f.Name
		s.known[f.Name] = true
	}
	s.Reset()
	return s
}

// Fields returns every field name in catalog order.
func (s *State) Fields() []string {
	return s.order
}

// Answer returns the stored value of field, or nil when unanswered.
func (s *State) Answer(field string) any {
	return s.answers[field]
}

// Answered reports whether field holds a value.
func (s *State) Answered(field string) bool {
	return s.answers[field] != nil
}

// Known reports whether field is a catalog field.
func (s *State) Known(field string) bool {
	return s.known[field]
}
