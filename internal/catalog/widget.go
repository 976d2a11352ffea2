package catalog

// widgetByType maps the effective raw type (after the text subtype
// override) to a widget.
var widgetByType = map[string]WidgetType{
	"text":        WidgetShortText,
	"notes":       WidgetShortText,
	"number":      WidgetNumeric,
	"integer":     WidgetNumeric,
	"date_dmy":    WidgetDate,
	"date_ymd":    WidgetDate,
	"date_mdy":    WidgetDate,
	"dropdown":    WidgetDropdown,
	"radio":       WidgetRadio,
	"yesno":       WidgetYesNo,
	"truefalse":   WidgetYesNo,
	"slider":      WidgetSlider,
	"descriptive": WidgetDescriptive,
}

// EffectiveType returns the type used to pick a widget. A generic "text"
// field is overridden by its validation subtype when one is present.
func EffectiveType(rawType string, subtype *string) string {
	if rawType == "text" && subtype != nil {
		return *subtype
	}
	return rawType
}

// ResolveWidget maps a raw type and optional validation subtype to a widget.
func ResolveWidget(rawType string, subtype *string) WidgetType {
	if w, ok := widgetByType[EffectiveType(rawType, subtype)]; ok {
		return w
	}
	return WidgetUnknown
}

// carriesChoices reports whether the raw type stores code/label pairs in
// the choices column. Other types use that column for slider labels or
// calculations.
func carriesChoices(rawType string) bool {
	switch rawType {
	case "dropdown", "radio", "checkbox":
		return true
	}
	return false
}
