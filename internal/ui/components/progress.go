package components

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/delectable/internal/ui/theme"
)

// ProgressBar displays a horizontal bar filled to Percent (0..1).
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// Slider is a bounded numeric control drawn as a progress bar. Value is
// nil until the user moves it.
type Slider struct {
	Min, Max, Step float64
	Value          *float64
	// Labels are shown under the bar, spread from left to right.
	Labels  []string
	Focused bool
	Width   int
}

// NewSlider creates a slider over [lo, hi]. A non-positive step means 1.
func NewSlider(lo, hi, step float64, value *float64, labels []string, width int) Slider {
	if step <= 0 {
		step = 1
	}
	return Slider{Min: lo, Max: hi, Step: step, Value: value, Labels: labels, Width: width}
}

// Update moves the value one step with left/right. The first move from an
// unset slider starts at the minimum. The bool reports a change.
func (s Slider) Update(msg tea.Msg) (Slider, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	var delta float64
	switch kmsg.String() {
	case "left", "h":
		delta = -s.Step
	case "right", "l":
		delta = s.Step
	case "space", " ":
	default:
		return s, false
	}

	v := s.Min
	if s.Value != nil {
		v = math.Min(s.Max, math.Max(s.Min, *s.Value+delta))
		if *s.Value == v {
			return s, false
		}
	}
	s.Value = &v
	return s, true
}

// View renders the bar, the current value and the labels.
func (s Slider) View() string {
	pct := 0.0
	if s.Value != nil && s.Max > s.Min {
		pct = (*s.Value - s.Min) / (s.Max - s.Min)
	}
	bar := NewProgressBar("", pct, false, s.Width-8).View()

	val := "  -"
	if s.Value != nil {
		val = fmt.Sprintf("  %g", *s.Value)
	}
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		style = theme.Focused
	}
	out := bar + style.Render(val)

	if len(s.Labels) > 0 {
		out += "\n" + theme.Hint.Render(spread(s.Labels, s.Width-8))
	}
	return out
}

// spread lays labels across width: first at the left edge, last at the
// right edge, the rest evenly between.
func spread(labels []string, width int) string {
	if len(labels) == 1 {
		return labels[0]
	}
	total := 0
	for _, l := range labels {
		total += lipgloss.Width(l)
	}
	gap := (width - total) / (len(labels) - 1)
	if gap < 1 {
		gap = 1
	}
	return strings.Join(labels, strings.Repeat(" ", gap))
}
