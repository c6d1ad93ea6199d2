// Package app is the root Bubble Tea model: it owns the screen router, the
// window size, and the header/footer chrome around the active screen.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	"github.com/slggamerTrue/languageLearning/internal/screens/home"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
)

// Deps are the collaborators every screen pulls from.
type Deps struct {
	Transport assess.Transport
	KV        store.KV
	Logger    *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Transport, deps.KV, deps.Logger)
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update forwards everything except quit to the active screen. Esc is NOT
// handled here: screens own their back navigation (the wizard walks its own
// steps backwards before popping).
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hinter.KeyHints(), footerHints...)
	} else if m.router.Depth() == 1 {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
