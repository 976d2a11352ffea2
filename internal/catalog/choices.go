package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChoices parses a pipe-delimited list of "code, label" pairs.
// Labels may themselves contain commas. A malformed segment fails the
// whole set rather than being skipped.
func ParseChoices(raw string) (ChoiceSet, error) {
	segments := strings.Split(raw, "|")
	set := make(ChoiceSet, 0, len(segments))
	seen := make(map[int]bool, len(segments))

	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, fmt.Errorf("choice %d is empty", i+1)
		}

		codeStr, label, ok := strings.Cut(seg, ",")
		if !ok {
			return nil, fmt.Errorf("choice %d %q has no \"code, label\" separator", i+1, seg)
		}

		code, err := strconv.Atoi(strings.TrimSpace(codeStr))
		if err != nil {
			return nil, fmt.Errorf("choice %d %q: code is not an integer", i+1, seg)
		}
		if seen[code] {
			return nil, fmt.Errorf("choice %d: duplicate code %d", i+1, code)
		}
		seen[code] = true

		set = append(set, Choice{Code: code, Label: strings.TrimSpace(label)})
	}

	return set, nil
}

// parseSliderLabels splits "left | middle | right" slider annotations.
func parseSliderLabels(raw string) []string {
	parts := strings.Split(raw, "|")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		labels = append(labels, strings.TrimSpace(p))
	}
	return labels
}

// YesNoChoices is the implicit choice set of yes/no widgets.
func YesNoChoices(rawType string) ChoiceSet {
	if rawType == "truefalse" {
		return ChoiceSet{{Code: 1, Label: "True"}, {Code: 0, Label: "False"}}
	}
	return ChoiceSet{{Code: 1, Label: "Yes"}, {Code: 0, Label: "No"}}
}
