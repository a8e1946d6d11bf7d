// Package understand is the terminal screen for the explanation
// dialogue: state a confusion, read the explanation, keep asking.
package understand

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/explain"
	appscreen "github.com/epistemiq/epistemiq/internal/screen"
	"github.com/epistemiq/epistemiq/internal/ui/components"
	"github.com/epistemiq/epistemiq/internal/ui/layout"
	"github.com/epistemiq/epistemiq/internal/ui/theme"
	"github.com/epistemiq/epistemiq/internal/understand"
)

type phase int

const (
	phaseAsk phase = iota
	phaseThinking
	phaseExplained
	phaseDone
)

// explainedMsg carries one explanation back to the screen.
type explainedMsg struct {
	Text string
	Err  error
}

// UnderstandScreen implements screen.Screen for the dialogue.
type UnderstandScreen struct {
	session *understand.Session
	code    string
	log     *zap.Logger

	phase       phase
	input       components.TextInput
	explanation string
	errMsg      string
	started     bool
}

var _ appscreen.Screen = (*UnderstandScreen)(nil)
var _ appscreen.KeyHintProvider = (*UnderstandScreen)(nil)

// New creates the screen over a code snippet.
func New(code string, explainer *explain.Service, logger *zap.Logger) *UnderstandScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnderstandScreen{
		session: understand.New(code, explainer, logger),
		code:    code,
		log:     logger,
		input:   components.NewTextInput("What are you confused about?", 200),
	}
}

func (s *UnderstandScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UnderstandScreen) Title() string {
	return "Understand"
}

func (s *UnderstandScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAsk, phaseExplained:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask / finish"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *UnderstandScreen) Update(msg tea.Msg) (appscreen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.phase = phaseDone
			return s, nil
		}
		s.explanation = msg.Text
		s.phase = phaseExplained
		s.input = components.NewTextInput("Follow up, or press Enter to finish...", 200)
		return s, s.input.Init()

	case tea.KeyMsg:
		if msg.String() == "enter" && (s.phase == phaseAsk || s.phase == phaseExplained) {
			return s.submit()
		}
	}

	if s.phase == phaseAsk || s.phase == phaseExplained {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *UnderstandScreen) submit() (appscreen.Screen, tea.Cmd) {
	text := s.input.Value()
	if s.phase == phaseExplained && text == "" {
		s.session.FollowUp(context.Background(), "")
		s.phase = phaseDone
		return s, nil
	}
	if text == "" {
		return s, nil
	}

	s.phase = phaseThinking
	return s, func() tea.Msg {
		if !s.started {
			s.started = true
			out, err := s.session.Start(context.Background(), text)
			return explainedMsg{Text: out, Err: err}
		}
		out, err := s.session.FollowUp(context.Background(), text)
		return explainedMsg{Text: out, Err: err}
	}
}

func (s *UnderstandScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	snippet := s.code
	if lines := strings.Split(snippet, "\n"); len(lines) > 8 {
		snippet = strings.Join(lines[:8], "\n") + "\n..."
	}
	b.WriteString(indent(theme.Hint.Render(snippet), 2))
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch s.phase {
	case phaseThinking:
		b.WriteString("  " + theme.Hint.Render("Thinking..."))
	case phaseDone:
		if s.errMsg != "" {
			b.WriteString("  " + theme.Incorrect.Render("Error: "+s.errMsg))
		} else {
			b.WriteString("  " + theme.Body.Render("Dialogue finished."))
		}
		b.WriteString("\n\n  " + theme.Hint.Render("Press Esc to go back."))
	default:
		if s.explanation != "" {
			b.WriteString(indent(theme.Body.Render(s.explanation), 2))
			b.WriteString("\n\n")
		}
		b.WriteString("  " + s.input.View())
	}

	return b.String()
}

func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
