package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/slggamerTrue/languageLearning/internal/ui/theme"
)

// Spinner is a loading indicator with a status line.
type Spinner struct {
	Model  spinner.Model
	Status string
}

// NewSpinner creates a spinner in the app accent color.
func NewSpinner(status string) Spinner {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return Spinner{Model: sp, Status: status}
}

// Tick starts the spinner animation.
func (s Spinner) Tick() tea.Cmd {
	return s.Model.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner and its status text.
func (s Spinner) View() string {
	return s.Model.View() + " " + theme.Loading.Render(s.Status)
}
