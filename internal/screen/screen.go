// Package screen defines the contract every screen in the terminal host
// implements, so the router can stack and drive them uniformly.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/epistemiq/epistemiq/internal/ui/layout"
)

// Screen is one full-content view managed by the router. Update returns
// the screen to keep on the stack, which may be the receiver or a
// replacement.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area; the app model owns the header
	// and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen override the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
