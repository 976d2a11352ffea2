package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/delectable/internal/catalog"
)

// ChoiceLabel renders a stored value for display. Single-select values
// resolve to their option label ("" when the code is not an option);
// other values print as they are. Unanswered renders as "".
func ChoiceLabel(fs catalog.FieldSpec, v any) string {
	if v == nil {
		return ""
	}
	choices := choicesFor(fs)
	if len(choices) == 0 {
		return FormatValue(v)
	}

	code, ok := asCode(v)
	if !ok {
		return ""
	}
	label, _ := choices.Label(code)
	return label
}

// FormatValue prints a stored value. Whole floats print without decimals.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func asCode(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case string:
		if c, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return c, true
		}
	}
	return 0, false
}

// Coerce converts text typed into a renderer control into the value
// stored for the widget. Numeric text becomes an int, or a float64 when it
// has a fraction; text that is not a number is returned unchanged. Blank
// text is unanswered for every widget.
func Coerce(w catalog.WidgetType, text string) any {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	switch w {
	case catalog.WidgetNumeric, catalog.WidgetSlider:
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return text
}

// Clamp limits a numeric value to b's range.
func Clamp(b *catalog.NumericBounds, v float64) float64 {
	if b == nil {
		return v
	}
	if b.Min != nil && v < *b.Min {
		v = *b.Min
	}
	if b.Max != nil && v > *b.Max {
		v = *b.Max
	}
	return v
}
