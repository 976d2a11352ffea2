// Package form turns catalog forms and session state into renderable
// pages. Materializing is a pure projection; it never changes the
// session.
package form

import (
	"fmt"
	"sync"

	"github.com/untillpro/goutils/logger"

	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/submission"
)

// Kind distinguishes the hand-built pages from catalog questionnaires.
type Kind int

const (
	KindQuestionnaire Kind = iota
	KindHome
	KindReview
)

// Source is the session state a page is built from.
type Source interface {
	submission.View
	CaseID() string
	VisitDay() (int, bool)
	LastStatus() string
}

// Field is one renderable row.
type Field struct {
	Name string
	// Label includes the question number when numbering is on.
	Label         string
	Number        string
	Help          string
	SectionHeader string
	Widget        catalog.WidgetType
	Choices       catalog.ChoiceSet
	Bounds        *catalog.NumericBounds
	SliderLabels  []string
	Hidden        bool
	Value         any
}

// Renderable reports whether the row shows an input control.
func (f Field) Renderable() bool {
	return !f.Hidden && f.Widget != catalog.WidgetUnknown
}

// ReviewRow is one line of the review table.
type ReviewRow struct {
	Question string
	Answer   string
	Field    string
	Value    any
}

// Page is a materialized form.
type Page struct {
	FormID string
	Title  string
	Kind   Kind
	Fields []Field
	Review []ReviewRow
	// Status is the last submission message, shown on the review page.
	Status string
}

// Labels of the home page.
const (
	PatientCodeLabel = "Patient code"
	VisitDayLabel    = "Day of visit (1-7)"
)

// Materialize builds the page for formID.
func Materialize(cat *catalog.Catalog, src Source, formID string, cfg Config) (*Page, error) {
	fs, ok := cat.Form(formID)
	if !ok {
		return nil, fmt.Errorf("unknown form %q", formID)
	}

	page := &Page{FormID: fs.ID, Title: fs.Title}
	switch fs.ID {
	case catalog.HomeFormID:
		page.Kind = KindHome
		page.Fields = homeFields(src)
	case catalog.ReviewFormID:
		page.Kind = KindReview
		page.Review = reviewRows(cat, src)
		page.Status = src.LastStatus()
	default:
		page.Kind = KindQuestionnaire
		page.Fields = questionnaireFields(cat, src, fs, cfg)
	}
	return page, nil
}

func homeFields(src Source) []Field {
	minDay, maxDay := 1.0, 7.0
	code := Field{
		Name:   catalog.PatientCodeField,
		Label:  PatientCodeLabel,
		Widget: catalog.WidgetShortText,
	}
	if id := src.CaseID(); id != "" {
		code.Value = id
	}

	day := Field{
		Name:   catalog.VisitDayField,
		Label:  VisitDayLabel,
		Widget: catalog.WidgetNumeric,
		Bounds: &catalog.NumericBounds{Min: &minDay, Max: &maxDay, Step: 1},
	}
	if d, ok := src.VisitDay(); ok {
		day.Value = d
	}
	return []Field{code, day}
}

// questionnaireFields lists every field of the form in catalog order.
// Hidden rows keep their number so numbering follows the catalog.
func questionnaireFields(cat *catalog.Catalog, src Source, parent catalog.FormSpec, cfg Config) []Field {
	specs := cat.FieldsOf(parent.ID)
	out := make([]Field, 0, len(specs))
	for i, fs := range specs {
		f := Field{
			Name:         fs.Name,
			Label:        fs.Label,
			Widget:       fs.Widget,
			Choices:      choicesFor(fs),
			Bounds:       fs.Bounds,
			SliderLabels: fs.SliderLabels,
			Hidden:       src.Hidden(fs.Name),
			Value:        src.Answer(fs.Name),
		}
		if fs.Help != nil {
			f.Help = *fs.Help
		}
		if fs.SectionHeader != nil {
			f.SectionHeader = *fs.SectionHeader
		}
		if cfg.Numbering {
			f.Number = fmt.Sprintf("%d.%d. ", parent.Index, i+1)
			f.Label = f.Number + f.Label
		}
		if fs.Widget == catalog.WidgetUnknown {
			warnUnknownWidget(fs)
		}
		out = append(out, f)
	}
	return out
}

// warnedFields holds fields already reported as unrenderable.
var warnedFields sync.Map

func warnUnknownWidget(fs catalog.FieldSpec) {
	if _, seen := warnedFields.LoadOrStore(fs.Name, true); seen {
		return
	}
	logger.Warning(fmt.Sprintf("field %q: unknown widget type %q, not rendered",
		fs.Name, catalog.EffectiveType(fs.RawType, fs.Subtype)))
}

// choicesFor returns the options of a single-select field. Radio and
// yes/no fields without options get the yes/no set.
func choicesFor(fs catalog.FieldSpec) catalog.ChoiceSet {
	if len(fs.Choices) > 0 || !fs.Widget.SingleSelect() || fs.Widget == catalog.WidgetDropdown {
		return fs.Choices
	}
	return catalog.YesNoChoices(fs.RawType)
}

func reviewRows(cat *catalog.Catalog, src Source) []ReviewRow {
	entries := submission.Project(src)
	rows := make([]ReviewRow, 0, len(entries))
	for _, e := range entries {
		fs, ok := cat.Field(e.Field)
		if !ok {
			continue
		}
		rows = append(rows, ReviewRow{
			Question: fs.Label,
			Answer:   ChoiceLabel(fs, e.Value),
			Field:    e.Field,
			Value:    e.Value,
		})
	}
	return rows
}
