// Package courses lists available lessons: pairs of study and practice units
// derived from the saved weekly plan, with a built-in starter course when no
// plan has been generated yet.
package courses

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	lessonscreen "github.com/slggamerTrue/languageLearning/internal/screens/lesson"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
)

// Course is one selectable entry: the create request the lesson screen will
// resolve on entry.
type Course struct {
	Request assess.CreateLessonRequest
	Detail  string
}

// Screen is the course browser.
type Screen struct {
	transport assess.Transport
	kv        store.KV
	logger    *zap.Logger

	menu     components.Menu
	fromPlan bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New builds the course list from the saved weekly plan, falling back to the
// starter catalog.
func New(transport assess.Transport, kv store.KV, logger *zap.Logger) *Screen {
	s := &Screen{transport: transport, kv: kv, logger: logger}

	courses, fromPlan := s.loadCourses()
	s.fromPlan = fromPlan

	items := make([]components.MenuItem, 0, len(courses))
	for _, c := range courses {
		label := c.Request.Topic
		if c.Request.Mode == tutor.ModePractice {
			label = "Practice: " + label
		} else {
			label = "Study: " + label
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: c.Detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: lessonscreen.NewFromRequest(transport, logger, c.Request),
					}
				}
			},
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

// loadCourses derives a study and a practice course from each saved
// weekly-plan day. Reports whether the saved plan was used.
func (s *Screen) loadCourses() ([]Course, bool) {
	var week []tutor.WeeklyPlanDay
	err := s.kv.Load(context.Background(), store.KeyWeeklyPlan, &week)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("load weekly plan failed", zap.Error(err))
		}
		return starterCourses(), false
	}
	if len(week) == 0 {
		return starterCourses(), false
	}

	var profile *tutor.UserProfile
	var p tutor.UserProfile
	if err := s.kv.Load(context.Background(), store.KeyProfile, &p); err == nil {
		profile = &p
	}

	courses := make([]Course, 0, len(week)*2)
	for i := range week {
		day := week[i]
		courses = append(courses, Course{
			Request: assess.CreateLessonRequest{
				Mode:          tutor.ModeStudy,
				Topic:         day.Topic,
				AssessmentDay: &day,
				Profile:       profile,
			},
			Detail: fmt.Sprintf("Day %d · %d minutes", day.DayNumber, day.EstimatedTime),
		})
		courses = append(courses, Course{
			Request: assess.CreateLessonRequest{
				Mode:    tutor.ModePractice,
				Topic:   day.Topic,
				Scene:   practiceSceneFor(day.Topic),
				Profile: profile,
			},
			Detail: fmt.Sprintf("Day %d · role play", day.DayNumber),
		})
	}
	return courses, true
}

// practiceSceneFor wraps a study topic in a generic conversation scenario.
func practiceSceneFor(topic string) *tutor.Scene {
	return &tutor.Scene{
		Description:      fmt.Sprintf("Practice scenario for %s", topic),
		YourRole:         "Conversation partner",
		StudentRole:      "English learner",
		AdditionalInfo:   fmt.Sprintf("This practice session focuses on %s", topic),
		CurrentSituation: "You are having a conversation to practice the learned concepts",
	}
}

// starterCourses is the catalog shown before any assessment has been run.
func starterCourses() []Course {
	return []Course{
		{
			Request: assess.CreateLessonRequest{
				Mode:  tutor.ModeStudy,
				Topic: "Greetings and Introductions in the Workplace",
				AssessmentDay: &tutor.WeeklyPlanDay{
					DayNumber: 1,
					Topic:     "Greetings and Introductions in the Workplace",
					KnowledgePoints: []tutor.KnowledgePoint{
						{
							Name:      "Basic Greetings",
							Level:     1,
							Examples:  []string{"Good morning", "Hello everyone"},
							Exercises: []string{"Practice formal greetings"},
						},
						{
							Name:      "Self Introduction",
							Level:     1,
							Examples:  []string{"My name is...", "I work in..."},
							Exercises: []string{"Introduce yourself to the team"},
						},
					},
					EstimatedTime: 30,
				},
			},
			Detail: "Basic greetings, self-introduction, professional etiquette",
		},
		{
			Request: assess.CreateLessonRequest{
				Mode:  tutor.ModePractice,
				Topic: "Greetings and Introductions in the Workplace",
				Scene: &tutor.Scene{
					Description:      "First day at a new office",
					YourRole:         "New employee",
					StudentRole:      "Team member",
					AdditionalInfo:   "This is your first team meeting",
					CurrentSituation: "You just entered the meeting room where your new team is waiting",
				},
			},
			Detail: "Role play your first team meeting",
		},
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Courses"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	header := "Pick a course to start."
	if !s.fromPlan {
		header = "Starter courses. Run the assessment to get a personalized plan."
	}
	return "\n  " + header + "\n\n" + s.menu.View()
}
