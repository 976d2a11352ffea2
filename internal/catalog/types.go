// Package catalog loads the Form Catalog and Field Catalog that drive the
// questionnaire. Both catalogs are tabular (REDCap data dictionary layout)
// and are parsed into ordered, typed specs.
package catalog

// Structural form ids. These pages are laid out by hand rather than from
// field rows.
const (
	HomeFormID   = "home"
	ReviewFormID = "review"
)

// Fields of the home page. They are not catalog rows.
const (
	PatientCodeField = "home_patient_code"
	VisitDayField    = "home_visit_day"
)

// WidgetType is the effective control a field renders as.
type WidgetType string

const (
	WidgetShortText   WidgetType = "short-text"
	WidgetNumeric     WidgetType = "numeric"
	WidgetDropdown    WidgetType = "dropdown"
	WidgetRadio       WidgetType = "radio"
	WidgetYesNo       WidgetType = "yesno"
	WidgetDate        WidgetType = "date"
	WidgetSlider      WidgetType = "slider"
	WidgetDescriptive WidgetType = "descriptive"
	WidgetUnknown     WidgetType = "unknown"
)

// Interactive reports whether the widget accepts user input.
func (w WidgetType) Interactive() bool {
	switch w {
	case WidgetDescriptive, WidgetUnknown:
		return false
	}
	return true
}

// SingleSelect reports whether the widget picks one code from a choice set.
func (w WidgetType) SingleSelect() bool {
	switch w {
	case WidgetDropdown, WidgetRadio, WidgetYesNo:
		return true
	}
	return false
}

// Choice is one coded option of a choice set.
type Choice struct {
	Code  int
	Label string
}

// ChoiceSet is an ordered list of coded options.
type ChoiceSet []Choice

// Label returns the display label for code.
func (c ChoiceSet) Label(code int) (string, bool) {
	for _, ch := range c {
		if ch.Code == code {
			return ch.Label, true
		}
	}
	return "", false
}

// Has reports whether code is one of the options.
func (c ChoiceSet) Has(code int) bool {
	_, ok := c.Label(code)
	return ok
}

// NumericBounds holds optional limits for numeric and slider widgets.
type NumericBounds struct {
	Min  *float64
	Max  *float64
	Step float64
}

// FormSpec is one row of the Form Catalog.
type FormSpec struct {
	ID    string
	Title string
	// Index is used for question numbering only.
	Index int
}

// FieldSpec is one row of the Field Catalog.
// Optional cells that were empty in the source are nil, never "".
type FieldSpec struct {
	Name    string
	Form    string
	RawType string
	Subtype *string
	Widget  WidgetType
	Label   string
	Help    *string

	Choices      ChoiceSet
	SliderLabels []string

	SectionHeader  *string
	BranchingLogic *string
	Bounds         *NumericBounds

	// Row is the 1-based line in the source sheet (header is line 1).
	Row int
}

// HasBranchingLogic reports whether the field carries a visibility rule.
func (f FieldSpec) HasBranchingLogic() bool {
	return f.BranchingLogic != nil
}
