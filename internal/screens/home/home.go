// Package home is the landing screen: start an assessment, browse courses,
// or build a custom practice scenario.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	wizardscreen "github.com/slggamerTrue/languageLearning/internal/screens/assessment"
	"github.com/slggamerTrue/languageLearning/internal/screens/courses"
	lessonscreen "github.com/slggamerTrue/languageLearning/internal/screens/lesson"
	"github.com/slggamerTrue/languageLearning/internal/screens/practice"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
	"github.com/slggamerTrue/languageLearning/internal/ui/theme"
)

// HomeScreen is the application's entry screen.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New wires the main menu. The assessment hands its result straight to a
// lesson screen, replacing the wizard on the stack so Esc from the lesson
// returns home rather than to a finished wizard.
func New(transport assess.Transport, kv store.KV, logger *zap.Logger) *HomeScreen {
	onComplete := func(lesson tutor.Lesson, log *tutor.MessageLog) tea.Cmd {
		history := append(log.Visible(), openingTurn(lesson))
		return func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: lessonscreen.New(transport, logger, lesson, history),
			}
		}
	}

	items := []components.MenuItem{
		{
			Label:  "Start Assessment",
			Detail: "Chat with the tutor to build your learning plan",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: wizardscreen.New(transport, kv, logger, onComplete),
					}
				}
			},
		},
		{
			Label:  "Browse Courses",
			Detail: "Study and practice units from your weekly plan",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: courses.New(transport, kv, logger),
					}
				}
			},
		},
		{
			Label:  "Custom Practice",
			Detail: "Describe your own role-play scenario",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: practice.New(transport, logger),
					}
				}
			},
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

// openingTurn converts the lesson's welcome text into the first assistant
// turn of the lesson chat.
func openingTurn(lesson tutor.Lesson) tutor.Message {
	msg := tutor.Message{Role: tutor.RoleAssistant}
	switch l := lesson.(type) {
	case tutor.StudyLesson:
		msg.Content = l.SpeechText
		msg.DisplayText = l.DisplayText
	case tutor.PracticeLesson:
		msg.Content = l.SpeechText
		msg.DisplayText = l.DisplayText
	}
	return msg
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("EngTutor")
	subtitle := theme.Subtitle.Width(width).Render("Your AI English tutor in the terminal")

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(title + "\n")
	b.WriteString(subtitle + "\n\n")

	menu := lipgloss.NewStyle().PaddingLeft(4).Render(h.menu.View())
	b.WriteString(menu)
	return b.String()
}
