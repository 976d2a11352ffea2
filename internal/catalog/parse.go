package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

// Form Catalog columns.
const (
	ColFormName  = "Form Name"
	ColFormTitle = "Title"
	ColFormIndex = "Form Index"
)

// Field Catalog columns, named as in a REDCap data dictionary.
const (
	ColFieldName      = "Variable / Field Name"
	ColFieldForm      = "Form Name"
	ColSectionHeader  = "Section Header"
	ColFieldType      = "Field Type"
	ColFieldLabel     = "Field Label"
	ColChoices        = "Choices, Calculations, OR Slider Labels"
	ColFieldNote      = "Field Note"
	ColValidationType = "Text Validation Type OR Show Slider Number"
	ColValidationMin  = "Text Validation Min"
	ColValidationMax  = "Text Validation Max"
	ColBranchingLogic = "Branching Logic (Show field only if...)"
)

const (
	defaultSliderMin = 0
	defaultSliderMax = 100
)

// requireColumns returns the indexes of the named columns, failing with a
// SchemaError that lists every missing one.
func requireColumns(t *Table, source string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	var missing []string
	for _, n := range names {
		i := t.Column(n)
		if i < 0 {
			missing = append(missing, strconv.Quote(n))
			continue
		}
		idx[n] = i
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Msg: fmt.Sprintf("missing columns %v", missing)}
	}
	return idx, nil
}

// ParseForms converts the Form Catalog table into FormSpecs in row order.
// An empty Form Index falls back to the row position.
func ParseForms(t *Table) ([]FormSpec, error) {
	cols, err := requireColumns(t, "forms", ColFormName, ColFormTitle)
	if err != nil {
		return nil, err
	}
	indexCol := t.Column(ColFormIndex)

	var errs []error
	forms := make([]FormSpec, 0, len(t.Rows))
	for r := range t.Rows {
		id := t.cell(r, cols[ColFormName])
		if id == "" {
			errs = append(errs, &SchemaError{Source: "forms", Row: t.line(r), Msg: "empty form name"})
			continue
		}

		index := r + 1
		if raw := t.cell(r, indexCol); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, &SchemaError{Source: "forms", Row: t.line(r), Field: id, Msg: "form index is not an integer", Err: err})
				continue
			}
			index = n
		}

		forms = append(forms, FormSpec{
			ID:    id,
			Title: t.cell(r, cols[ColFormTitle]),
			Index: index,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return forms, nil
}

// ParseFields converts the Field Catalog table into FieldSpecs in row order.
func ParseFields(t *Table) ([]FieldSpec, error) {
	cols, err := requireColumns(t, "fields", ColFieldName, ColFieldForm, ColFieldType, ColFieldLabel)
	if err != nil {
		return nil, err
	}
	var (
		sectionCol = t.Column(ColSectionHeader)
		choicesCol = t.Column(ColChoices)
		noteCol    = t.Column(ColFieldNote)
		subtypeCol = t.Column(ColValidationType)
		minCol     = t.Column(ColValidationMin)
		maxCol     = t.Column(ColValidationMax)
		logicCol   = t.Column(ColBranchingLogic)
	)

	var errs []error
	fields := make([]FieldSpec, 0, len(t.Rows))
	for r := range t.Rows {
		line := t.line(r)
		name := t.cell(r, cols[ColFieldName])
		if name == "" {
			errs = append(errs, &SchemaError{Source: "fields", Row: line, Msg: "empty field name"})
			continue
		}

		f := FieldSpec{
			Name:           name,
			Form:           t.cell(r, cols[ColFieldForm]),
			RawType:        t.cell(r, cols[ColFieldType]),
			Subtype:        t.optional(r, subtypeCol),
			Label:          t.cell(r, cols[ColFieldLabel]),
			Help:           t.optional(r, noteCol),
			SectionHeader:  t.optional(r, sectionCol),
			BranchingLogic: t.optional(r, logicCol),
			Row:            line,
		}
		f.Widget = ResolveWidget(f.RawType, f.Subtype)

		if raw := t.cell(r, choicesCol); raw != "" {
			switch {
			case carriesChoices(f.RawType):
				choices, err := ParseChoices(raw)
				if err != nil {
					errs = append(errs, &SchemaError{Source: "fields", Row: line, Field: name, Msg: "malformed choice set", Err: err})
					continue
				}
				f.Choices = choices
			case f.RawType == "slider":
				f.SliderLabels = parseSliderLabels(raw)
			}
		}
		if f.Widget == WidgetYesNo && len(f.Choices) == 0 {
			f.Choices = YesNoChoices(f.RawType)
		}

		bounds, err := parseBounds(t.cell(r, minCol), t.cell(r, maxCol), f.Widget)
		if err != nil {
			errs = append(errs, &SchemaError{Source: "fields", Row: line, Field: name, Msg: "malformed validation bounds", Err: err})
			continue
		}
		f.Bounds = bounds

		fields = append(fields, f)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fields, nil
}

// parseBounds reads optional min/max cells. Sliders always get bounds.
func parseBounds(minRaw, maxRaw string, w WidgetType) (*NumericBounds, error) {
	if minRaw == "" && maxRaw == "" && w != WidgetSlider {
		return nil, nil
	}

	b := &NumericBounds{Step: 1}
	if minRaw != "" {
		v, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("min %q: %w", minRaw, err)
		}
		b.Min = &v
	}
	if maxRaw != "" {
		v, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("max %q: %w", maxRaw, err)
		}
		b.Max = &v
	}
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		return nil, fmt.Errorf("min %v is greater than max %v", *b.Min, *b.Max)
	}

	if w == WidgetSlider {
		if b.Min == nil {
			v := float64(defaultSliderMin)
			b.Min = &v
		}
		if b.Max == nil {
			v := float64(defaultSliderMax)
			b.Max = &v
		}
	}
	return b, nil
}
