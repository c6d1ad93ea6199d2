// Package practice is the custom role-play builder: the learner describes a
// scenario field by field and the transport turns it into a practice lesson.
package practice

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	lessonscreen "github.com/slggamerTrue/languageLearning/internal/screens/lesson"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
	"github.com/slggamerTrue/languageLearning/internal/ui/theme"
)

// field indexes into the form. Order matches the on-screen layout.
const (
	fieldTopic = iota
	fieldDescription
	fieldTutorRole
	fieldStudentRole
	fieldSituation
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Topic",
	"Scenario description",
	"Tutor plays",
	"You play",
	"Opening situation",
}

var fieldPlaceholders = [fieldCount]string{
	"Ordering coffee",
	"A busy downtown cafe at rush hour",
	"Barista",
	"Customer",
	"You just reached the front of the line",
}

// Screen collects the scenario and pushes a lesson screen when submitted.
type Screen struct {
	transport assess.Transport
	logger    *zap.Logger

	values [fieldCount]string
	active int
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(transport assess.Transport, logger *zap.Logger) *Screen {
	s := &Screen{transport: transport, logger: logger}
	s.input = s.inputFor(0)
	return s
}

func (s *Screen) inputFor(field int) components.TextInput {
	in := components.NewTextInput(fieldPlaceholders[field], false, 300)
	in.Model.SetValue(s.values[field])
	return in
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Custom Practice"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Next field"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Esc", Description: "Back"},
	}
	if s.active == fieldCount-1 {
		hints[0].Description = "Start practice"
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up":
		s.moveTo(s.active - 1)
		return s, s.input.Init()
	case "down", "tab":
		s.moveTo(s.active + 1)
		return s, s.input.Init()
	case "enter":
		s.values[s.active] = strings.TrimSpace(s.input.Value())
		if s.active < fieldCount-1 {
			s.moveTo(s.active + 1)
			return s, s.input.Init()
		}
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *Screen) moveTo(field int) {
	if field < 0 || field >= fieldCount {
		return
	}
	s.values[s.active] = strings.TrimSpace(s.input.Value())
	s.active = field
	s.input = s.inputFor(field)
}

// submit validates the form and pushes the lesson screen. Only the topic is
// mandatory; the transport fills in anything else left blank.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	if s.values[fieldTopic] == "" {
		s.errMsg = "A topic is required."
		s.moveTo(fieldTopic)
		return s, s.input.Init()
	}
	s.errMsg = ""

	req := assess.CreateLessonRequest{
		Mode:  tutor.ModePractice,
		Topic: s.values[fieldTopic],
		Scene: &tutor.Scene{
			Description:      s.values[fieldDescription],
			YourRole:         s.values[fieldTutorRole],
			StudentRole:      s.values[fieldStudentRole],
			CurrentSituation: s.values[fieldSituation],
		},
	}
	transport, logger := s.transport, s.logger
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: lessonscreen.NewFromRequest(transport, logger, req),
		}
	}
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n  " + theme.Subtitle.Render("Describe a scenario to practice.") + "\n\n")

	for i, label := range fieldLabels {
		cursor := "  "
		style := theme.Unselected
		if i == s.active {
			cursor = "> "
			style = theme.Selected
		}
		b.WriteString("  " + cursor + style.Render(label) + "\n")
		if i == s.active {
			b.WriteString("      " + s.input.View() + "\n")
		} else if s.values[i] != "" {
			b.WriteString("      " + theme.Hint.Render(s.values[i]) + "\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n  " + theme.ErrorPanel.Render(s.errMsg) + "\n")
	}
	return b.String()
}
