package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/epistemiq/epistemiq/internal/explain"
	"github.com/epistemiq/epistemiq/internal/feedback"
	"github.com/epistemiq/epistemiq/internal/quizgen"
	"github.com/epistemiq/epistemiq/internal/router"
	"github.com/epistemiq/epistemiq/internal/screen"
	dashscreen "github.com/epistemiq/epistemiq/internal/screens/dashboard"
	"github.com/epistemiq/epistemiq/internal/screens/history"
	"github.com/epistemiq/epistemiq/internal/store"
	"github.com/epistemiq/epistemiq/internal/ui/components"
	"github.com/epistemiq/epistemiq/internal/ui/theme"
)

// Deps carries the services the home screen hands to child screens.
type Deps struct {
	Store    *store.Store
	QuizGen  *quizgen.Service
	Feedback *feedback.Service
	Explain  *explain.Service
	Logger   *zap.Logger
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu     components.Menu
	llmReady bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashscreen.New(deps.Store)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Store)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		llmReady: deps.QuizGen != nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("EpistemIQ"))
	sections = append(sections, theme.Subtitle.Width(width).Render("learn from your own errors"))
	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	if !h.llmReady {
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render(
			"No generator API key configured — quiz and understand need one.\n"+
				"Set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY) and restart."))
	} else {
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render(
			"Start a quiz with `epistemiq learn` or `epistemiq quiz <file>`."))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
