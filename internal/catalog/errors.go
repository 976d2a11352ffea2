package catalog

import "fmt"

// SchemaError reports a malformed catalog row or a broken catalog invariant.
// It is fatal at load time.
type SchemaError struct {
	Source string // "forms" or "fields"
	Row    int    // 0 when the error is not tied to a row
	Field  string
	Msg    string
	Err    error
}

func (e *SchemaError) Error() string {
	loc := e.Source
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", loc, e.Row)
	}
	if e.Field != "" {
		loc = fmt.Sprintf("%s (field %q)", loc, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("schema: %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("schema: %s: %s", loc, e.Msg)
}

func (e *SchemaError) Unwrap() error { return e.Err }
