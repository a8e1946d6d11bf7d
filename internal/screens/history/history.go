package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	appscreen "github.com/epistemiq/epistemiq/internal/screen"
	"github.com/epistemiq/epistemiq/internal/store"
	"github.com/epistemiq/epistemiq/internal/ui/layout"
	"github.com/epistemiq/epistemiq/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []store.QuizEntry
}

// HistoryScreen displays the quiz answer log, newest first.
type HistoryScreen struct {
	st      *store.Store
	entries []store.QuizEntry
	offset  int
	loaded  bool
}

var _ appscreen.Screen = (*HistoryScreen)(nil)
var _ appscreen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{st: st}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{Entries: s.st.GetQuizHistory(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (appscreen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.entries = msg.Entries
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down", "j":
			if s.offset < len(s.entries)-1 {
				s.offset++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return "\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render("Loading history...")
	}
	if len(s.entries) == 0 {
		return "\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(
			"No quiz answers recorded yet.")
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	end := s.offset + visible
	if end > len(s.entries) {
		end = len(s.entries)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, e := range s.entries[s.offset:end] {
		verdict := theme.Incorrect.Render("✗")
		if e.Correct {
			verdict = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("  %s  %-18s %6d ms  %s",
			verdict, e.Topic, e.ResponseTimeMs,
			theme.Hint.Render(e.Timestamp.Format("Jan 02, 2006 15:04")))
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
