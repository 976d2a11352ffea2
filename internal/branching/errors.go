package branching

import "fmt"

// ParseError reports a branching-logic expression that does not have the
// single-predicate shape "[field] = value".
type ParseError struct {
	Field  string // field whose logic failed to parse
	Expr   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("branching logic of %q (%q): %s", e.Field, e.Expr, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
