// Package submission assembles the visible answers of a session into a
// flat record and sends it to the case-report-form API.
package submission

import (
	"strings"
)

// RecordIDKey is the reserved key carrying the case identifier.
const RecordIDKey = "record_id"

// Record is the flat key/value payload of one case.
type Record map[string]any

// View is the read side of a session needed to build a record.
type View interface {
	// Fields returns every field name in catalog order.
	Fields() []string
	// Answer returns the stored value, nil when unanswered.
	Answer(field string) any
	// Hidden reports whether branching logic currently hides the field.
	Hidden(field string) bool
}

// Entry is one answered, visible field.
type Entry struct {
	Field string
	Value any
}

// Project returns the answered and visible fields in catalog order. A
// hidden field is dropped even if it kept an answer from before it was
// hidden.
func Project(v View) []Entry {
	var out []Entry
	for _, name := range v.Fields() {
		val := v.Answer(name)
		if val == nil || v.Hidden(name) {
			continue
		}
		out = append(out, Entry{Field: name, Value: val})
	}
	return out
}

// BuildRecord projects v and attaches caseID under RecordIDKey.
func BuildRecord(v View, caseID string) (Record, error) {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, &Error{Kind: MissingCaseID}
	}

	entries := Project(v)
	rec := make(Record, len(entries)+1)
	for _, e := range entries {
		rec[e.Field] = e.Value
	}
	rec[RecordIDKey] = caseID
	return rec, nil
}

// CaseID returns the case identifier of a record.
func (r Record) CaseID() string {
	id, _ := r[RecordIDKey].(string)
	return id
}

// FieldCount is the number of answer fields, excluding the case id.
func (r Record) FieldCount() int {
	if _, ok := r[RecordIDKey]; ok {
		return len(r) - 1
	}
	return len(r)
}
