package session

import (
	"regexp"
	"strconv"

	"github.com/abhisek/delectable/internal/catalog"
)

// Visit days run from 1 to LastVisitDay. The last day shows the full
// questionnaire; earlier days show only their daily forms.
const (
	FirstVisitDay = 1
	LastVisitDay  = 7
)

// dailyMarker tags a form as belonging to one visit day, e.g. "cdai_d3".
var dailyMarker = regexp.MustCompile(`_d(\d+)`)

// DailyDay returns the visit day a form id is tagged with.
func DailyDay(formID string) (int, bool) {
	m := dailyMarker.FindStringSubmatch(formID)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return day, true
}

// FormsForDay filters formIDs (in catalog order) for a visit day. A nil or
// out-of-range day yields the home form only and ok=false.
func FormsForDay(formIDs []string, day *int) (ids []string, ok bool) {
	if day == nil || *day < FirstVisitDay || *day > LastVisitDay {
		return []string{catalog.HomeFormID}, false
	}

	for _, id := range formIDs {
		tagged, daily := DailyDay(id)
		switch {
		case *day == LastVisitDay && !daily:
			ids = append(ids, id)
		case *day < LastVisitDay && (id == catalog.HomeFormID || id == catalog.ReviewFormID):
			ids = append(ids, id)
		case *day < LastVisitDay && daily && tagged == *day:
			ids = append(ids, id)
		}
	}
	return ids, true
}

// Move is the effect of a navigation request.
type Move int

const (
	MoveNone Move = iota
	MoveAdvance
	MoveBack
	MoveSubmit
)

func (m Move) String() string {
	switch m {
	case MoveAdvance:
		return "advance"
	case MoveBack:
		return "back"
	case MoveSubmit:
		return "submit"
	default:
		return "none"
	}
}

// Navigator tracks the active form among the forms available for the
// selected visit day.
type Navigator struct {
	all       []string
	available []string
	current   string
}

// NewNavigator starts on the home form with no day selected.
func NewNavigator(formIDs []string) *Navigator {
	return &Navigator{
		all:       formIDs,
		available: []string{catalog.HomeFormID},
		current:   catalog.HomeFormID,
	}
}

// SetDay recomputes the available forms. The current form is kept when it
// is still available, otherwise the first available form becomes current.
func (n *Navigator) SetDay(day *int) Hint {
	ids, ok := FormsForDay(n.all, day)
	n.available = ids
	if n.index(n.current) < 0 {
		n.current = ids[0]
	}
	if !ok {
		return HintInvalid
	}
	return HintValid
}

// Available returns the selectable form ids in order.
func (n *Navigator) Available() []string {
	return n.available
}

// Current returns the active form id.
func (n *Navigator) Current() string {
	return n.current
}

// Position returns the 0-based index of the current form and the count of
// available forms.
func (n *Navigator) Position() (int, int) {
	return n.index(n.current), len(n.available)
}

func (n *Navigator) index(id string) int {
	for i, a := range n.available {
		if a == id {
			return i
		}
	}
	return -1
}

// Goto selects an available form directly.
func (n *Navigator) Goto(id string) bool {
	if n.index(id) < 0 {
		return false
	}
	n.current = id
	return true
}

// Previous moves to the prior form. It is a no-op on the first form.
func (n *Navigator) Previous() Move {
	if !n.CanGoBack() {
		return MoveNone
	}
	n.current = n.available[n.index(n.current)-1]
	return MoveBack
}

// Next advances to the following form. On the last form it does not move
// and reports MoveSubmit instead.
func (n *Navigator) Next() Move {
	if !n.CanGoForward() {
		return MoveNone
	}
	i := n.index(n.current)
	if i == len(n.available)-1 {
		return MoveSubmit
	}
	n.current = n.available[i+1]
	return MoveAdvance
}

// NextLabel is the caption of the forward control.
func (n *Navigator) NextLabel() string {
	if n.AtLast() {
		return "Submit"
	}
	return "Next"
}

// AtLast reports whether the current form is the last available one.
func (n *Navigator) AtLast() bool {
	return n.index(n.current) == len(n.available)-1
}

// CanGoBack is false on the first form.
func (n *Navigator) CanGoBack() bool {
	return n.index(n.current) > 0
}

// CanGoForward is false when only one form is available.
func (n *Navigator) CanGoForward() bool {
	return len(n.available) > 1
}
