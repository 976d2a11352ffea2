// Package lint checks a catalog and its branching graph for authoring
// problems without running a session.
package lint

import (
	"fmt"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule names.
const (
	RuleDanglingReference = "dangling-reference"
	RuleUnknownCode       = "unknown-code"
	RuleUnknownWidget     = "unknown-widget"
	RuleChainedLogic      = "chained-logic"
	RuleEmptyForm         = "empty-form"
	RuleCrossForm         = "cross-form-reference"
)

// Issue is one problem found in the catalog.
type Issue struct {
	Severity string `json:"severity"`
	Field    string `json:"field,omitempty"`
	Form     string `json:"form,omitempty"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	loc := i.Field
	if loc == "" {
		loc = i.Form
	}
	return fmt.Sprintf("%-7s %-22s %-24s %s", i.Severity, i.Rule, loc, i.Message)
}

// Result holds every issue in catalog order. Valid is false when any
// issue is an error.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Count returns the number of issues with the given severity.
func (r *Result) Count(severity string) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == severity {
			n++
		}
	}
	return n
}

// Run checks cat and g.
func Run(cat *catalog.Catalog, g *branching.Graph) *Result {
	r := &Result{Valid: true, Issues: make([]Issue, 0)}

	// Check 1: branching references
	for _, e := range g.Edges() {
		dep, _ := cat.Field(e.Dependent)
		ref, ok := cat.Field(e.Referenced)
		if !ok {
			r.add(SeverityError, RuleDanglingReference, e.Dependent, "",
				fmt.Sprintf("branching logic references unknown field %q; the field can never be shown", e.Referenced))
			continue
		}
		if len(ref.Choices) > 0 && !ref.Choices.Has(e.Expected) {
			r.add(SeverityWarning, RuleUnknownCode, e.Dependent, "",
				fmt.Sprintf("expects %s = %d but %q has no such option", e.Referenced, e.Expected, e.Referenced))
		}
		if ref.Form != dep.Form {
			r.add(SeverityInfo, RuleCrossForm, e.Dependent, dep.Form,
				fmt.Sprintf("gated by %q on form %q", e.Referenced, ref.Form))
		}
	}

	// Check 2: chains propagate one hop only
	for _, e := range g.Chains() {
		r.add(SeverityInfo, RuleChainedLogic, e.Dependent, "",
			fmt.Sprintf("gated by %q, which is itself gated; hiding %q does not re-evaluate this field", e.Referenced, e.Referenced))
	}

	// Check 3: widgets
	for _, f := range cat.Fields() {
		if f.Widget == catalog.WidgetUnknown {
			r.add(SeverityWarning, RuleUnknownWidget, f.Name, f.Form,
				fmt.Sprintf("type %q has no widget and will not be rendered", catalog.EffectiveType(f.RawType, f.Subtype)))
		}
	}

	// Check 4: questionnaire forms without fields
	for _, f := range cat.Forms() {
		if f.ID == catalog.HomeFormID || f.ID == catalog.ReviewFormID {
			continue
		}
		if len(cat.FieldsOf(f.ID)) == 0 {
			r.add(SeverityInfo, RuleEmptyForm, "", f.ID, "form has no fields")
		}
	}

	return r
}

func (r *Result) add(severity, rule, field, form, message string) {
	if severity == SeverityError {
		r.Valid = false
	}
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Field:    field,
		Form:     form,
		Rule:     rule,
		Message:  message,
	})
}
