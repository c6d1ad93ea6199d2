package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
)

// Screen is one full-size view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen override the footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer lets a screen release resources (cancel in-flight calls) when it is
// removed from the stack.
type Closer interface {
	Close()
}
