package quiz

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/epistemiq/epistemiq/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return centered(width, theme.Hint.Render("Generating questions..."))
	case phaseEmpty:
		return centered(width, theme.Hint.Render("No questions could be generated for this input.\nPress Esc to go back."))
	case phaseQuestion, phaseScored:
		return s.renderQuestion(width)
	case phaseFeedback:
		return s.renderFeedback(width)
	case phaseDone:
		return centered(width, theme.Body.Render("Session complete.")+"\n\n"+theme.Hint.Render("Press Esc to go back."))
	}
	return ""
}

func (s *QuizScreen) renderQuestion(width int) string {
	_, i, ok := s.engine.Current()
	progress := ""
	if ok {
		progress = fmt.Sprintf("Question %d of %d", i+1, s.engine.Len())
	} else {
		progress = "Done"
	}
	correct, total := s.engine.Score()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Subtitle.Render(progress) + "   " +
		theme.Hint.Render(fmt.Sprintf("%d/%d correct", correct, total)))
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(indent(s.choice.View(), 2))

	if s.phase == phaseScored {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString("  " + theme.Correct.Render("Correct!"))
		} else {
			b.WriteString("  " + theme.Incorrect.Render("Not quite."))
		}
		b.WriteString("\n\n  " + theme.Hint.Render("Press any key to continue"))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	r := s.result

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Title.Render(r.QuizSummary))
	if r.TotalScore != "" {
		b.WriteString("   " + theme.Subtitle.Render("Score: "+r.TotalScore))
	}
	b.WriteString("\n\n")

	if len(r.StrongTopics) > 0 {
		b.WriteString("  " + theme.Correct.Render("Strong topics") + "\n")
		writeTopicMap(&b, r.StrongTopics)
		b.WriteString("\n")
	}
	if len(r.WeakTopics) > 0 {
		b.WriteString("  " + theme.Incorrect.Render("Weak topics") + "\n")
		writeTopicMap(&b, r.WeakTopics)
		b.WriteString("\n")
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("  " + theme.Body.Bold(true).Render("Suggestions") + "\n")
		for _, sug := range r.Suggestions {
			b.WriteString("    - " + theme.Body.Render(sug) + "\n")
		}
		b.WriteString("\n")
	}
	if s.fix != "" {
		b.WriteString("  " + theme.Body.Bold(true).Render("Suggested fix") + "\n")
		b.WriteString(indent(theme.Body.Render(s.fix), 4) + "\n\n")
	}
	if r.Explanation != "" {
		b.WriteString("  " + theme.Body.Bold(true).Render("Explanation") + "\n")
		b.WriteString(indent(theme.Body.Render(r.Explanation), 4) + "\n\n")
	}
	if r.Clarification != "" {
		b.WriteString("  " + theme.Body.Bold(true).Render("Clarification") + "\n")
		b.WriteString(indent(theme.Body.Render(r.Clarification), 4) + "\n\n")
	}

	if s.waiting {
		b.WriteString("  " + theme.Hint.Render("Thinking..."))
	} else {
		b.WriteString("  " + s.followup.View())
	}

	return b.String()
}

func writeTopicMap(b *strings.Builder, m map[string]string) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("    " + theme.Body.Bold(true).Render(name) + ": " + theme.Body.Render(m[name]) + "\n")
	}
}

func centered(width int, content string) string {
	return "\n\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
