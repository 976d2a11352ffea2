package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/delectable/internal/form"
	"github.com/abhisek/delectable/internal/ui/components"
	"github.com/abhisek/delectable/internal/ui/layout"
	"github.com/abhisek/delectable/internal/ui/theme"
)

func (s *QuestionnaireScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.page == nil {
		return ""
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	focusLine := 0
	line := func() int { return strings.Count(b.String(), "\n") }

	pos, total := s.sess.Navigator().Position()
	b.WriteString(theme.Title.Render(s.Title()))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   form %d of %d", pos+1, total)))
	b.WriteString("\n\n")

	switch s.page.Kind {
	case form.KindReview:
		b.WriteString(renderReview(s.page.Review, cw))
	default:
		ctrl := s.controlIndex()
		for _, f := range s.page.Fields {
			if !f.Renderable() {
				continue
			}
			if f.SectionHeader != "" {
				b.WriteString(theme.Section.Render(f.SectionHeader) + "\n\n")
			}
			if !f.Widget.Interactive() {
				b.WriteString(theme.Body.Width(cw).Render(f.Label) + "\n\n")
				continue
			}

			i := ctrl[f.Name]
			marker := "  "
			labelStyle := theme.Body
			if i == s.focus {
				marker = "▸ "
				labelStyle = theme.Focused
				focusLine = line()
			}
			b.WriteString(labelStyle.Render(marker+f.Label) + "\n")
			if f.Help != "" {
				b.WriteString("  " + theme.Hint.Render(f.Help) + "\n")
			}
			b.WriteString(indent(s.renderControl(i), "  ") + "\n\n")
		}
	}

	if s.page.Status != "" {
		b.WriteString(theme.Status.Render(s.page.Status) + "\n\n")
	}

	var buttons []string
	for i, c := range s.controls {
		if c.kind == controlPrev || c.kind == controlNext {
			if i == s.focus {
				focusLine = line()
			}
			buttons = append(buttons, c.button.View())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	body := lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
	return layout.Window(body, focusLine, height)
}

// controlIndex maps field names to their position in the focus ring.
func (s *QuestionnaireScreen) controlIndex() map[string]int {
	idx := make(map[string]int, len(s.controls))
	for i, c := range s.controls {
		if c.kind != controlPrev && c.kind != controlNext {
			idx[c.field.Name] = i
		}
	}
	return idx
}

func (s *QuestionnaireScreen) renderControl(i int) string {
	c := s.controls[i]
	switch c.kind {
	case controlChoice:
		return c.choice.View()
	case controlSlider:
		return c.slider.View()
	default:
		return c.input.View()
	}
}

func renderReview(rows []form.ReviewRow, cw int) string {
	if len(rows) == 0 {
		return theme.Hint.Render("No answers yet.") + "\n\n"
	}

	qWidth := cw / 2
	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	b.WriteString(header.Width(qWidth).Render("Question") + header.Render("Answer") + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)) + "\n")
	for _, r := range rows {
		q := theme.Body.Width(qWidth).Render(r.Question)
		a := theme.Selected.Width(cw - qWidth).Render(r.Answer)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, q, a) + "\n")
	}
	return b.String() + "\n"
}

func indent(s, pad string) string {
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
