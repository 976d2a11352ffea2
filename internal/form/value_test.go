package form

import (
	"testing"

	"github.com/abhisek/delectable/internal/catalog"
)

func TestChoiceLabel(t *testing.T) {
	radio := catalog.FieldSpec{
		Widget:  catalog.WidgetRadio,
		Choices: catalog.ChoiceSet{{Code: 1, Label: "Mild"}, {Code: 2, Label: "Severe"}},
	}
	yesno := catalog.FieldSpec{Widget: catalog.WidgetYesNo, RawType: "yesno"}
	text := catalog.FieldSpec{Widget: catalog.WidgetShortText}

	tests := []struct {
		name  string
		field catalog.FieldSpec
		value any
		want  string
	}{
		{"code", radio, 2, "Severe"},
		{"float code", radio, 1.0, "Mild"},
		{"string code", radio, "1", "Mild"},
		{"unknown code", radio, 9, ""},
		{"unanswered", radio, nil, ""},
		{"implicit yes/no", yesno, 0, "No"},
		{"free text", text, "headache", "headache"},
		{"number", text, 38.5, "38.5"},
		{"whole float", text, 38.0, "38"},
	}

	for _, tt := range tests {
		if got := ChoiceLabel(tt.field, tt.value); got != tt.want {
			t.Errorf("%s: ChoiceLabel(%v) = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		widget catalog.WidgetType
		text   string
		want   any
	}{
		{catalog.WidgetNumeric, "42", 42},
		{catalog.WidgetNumeric, " 37.5 ", 37.5},
		{catalog.WidgetNumeric, "abc", "abc"},
		{catalog.WidgetNumeric, "", nil},
		{catalog.WidgetSlider, "10", 10},
		{catalog.WidgetShortText, "42", "42"},
		{catalog.WidgetDate, "2021-01-02", "2021-01-02"},
		{catalog.WidgetShortText, "  ", nil},
	}

	for _, tt := range tests {
		if got := Coerce(tt.widget, tt.text); got != tt.want {
			t.Errorf("Coerce(%s, %q) = %#v, want %#v", tt.widget, tt.text, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	lo, hi := 0.0, 10.0
	b := &catalog.NumericBounds{Min: &lo, Max: &hi, Step: 1}

	if got := Clamp(b, -3); got != 0 {
		t.Errorf("Clamp(-3) = %v, want 0", got)
	}
	if got := Clamp(b, 12); got != 10 {
		t.Errorf("Clamp(12) = %v, want 10", got)
	}
	if got := Clamp(nil, 12); got != 12 {
		t.Errorf("Clamp(nil, 12) = %v, want 12", got)
	}
}
