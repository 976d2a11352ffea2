package submission

import "fmt"

// ErrorKind classifies a submission failure.
type ErrorKind int

const (
	// MissingCaseID means no patient code was entered.
	MissingCaseID ErrorKind = iota + 1
	// TransportFailure means the API call failed or was rejected.
	TransportFailure
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCaseID:
		return "missing case id"
	case TransportFailure:
		return "transport failure"
	default:
		return "unknown"
	}
}

// Error is a recoverable submission failure. Session state is left
// unchanged and the user may retry.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submission: %s: %v", e.Kind, e.Err)
	}
	return "submission: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err,
// &Error{Kind: MissingCaseID}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
