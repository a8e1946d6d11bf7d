// Package dashboard renders per-topic proficiency in the terminal.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/epistemiq/epistemiq/internal/dashboard"
	appscreen "github.com/epistemiq/epistemiq/internal/screen"
	"github.com/epistemiq/epistemiq/internal/store"
	"github.com/epistemiq/epistemiq/internal/ui/components"
	"github.com/epistemiq/epistemiq/internal/ui/theme"
)

// loadedMsg carries the computed overview.
type loadedMsg struct {
	Summary dashboard.Summary
}

// DashboardScreen displays the proficiency overview.
type DashboardScreen struct {
	st      *store.Store
	summary dashboard.Summary
	loaded  bool
}

var _ appscreen.Screen = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(st *store.Store) *DashboardScreen {
	return &DashboardScreen{st: st}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records := s.st.GetAllProficiency(context.Background())
		return loadedMsg{Summary: dashboard.Overview(records)}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) Update(msg tea.Msg) (appscreen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.summary = msg.Summary
		s.loaded = true
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return "\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render("Loading...")
	}
	if len(s.summary.Rows) == 0 {
		return "\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(
			"No proficiency data yet. Take a quiz first.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Body.Bold(true).Render(fmt.Sprintf(
		"Overall: %.1f%% across %d answers, mean response %.0f ms",
		s.summary.OverallAccuracy, s.summary.TotalQuestions, s.summary.MeanResponseTime)))
	b.WriteString("\n\n")

	barWidth := width - 50
	if barWidth < 10 {
		barWidth = 10
	}
	for _, row := range s.summary.Rows {
		bar := components.NewProgressBar(row.Accuracy/100, barWidth)
		last := "never"
		if row.LastTested != nil {
			last = row.LastTested.Format("Jan 02 15:04")
		}
		line := fmt.Sprintf("  %-18s %s %5.1f%%  %s  %3d q  %s",
			row.Topic, bar.View(), row.Accuracy,
			bucketStyle(row.Bucket).Render(fmt.Sprintf("%-6s", string(row.Bucket))),
			row.TotalQuestions, theme.Hint.Render(last))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func bucketStyle(bucket dashboard.Bucket) lipgloss.Style {
	switch bucket {
	case dashboard.BucketHigh:
		return theme.BucketHigh
	case dashboard.BucketMedium:
		return theme.BucketMedium
	default:
		return theme.BucketLow
	}
}
