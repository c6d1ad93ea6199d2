package courses

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	lessonscreen "github.com/slggamerTrue/languageLearning/internal/screens/lesson"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

type stubTransport struct{}

func (stubTransport) InitialChat(context.Context, []tutor.Message) (tutor.Message, error) {
	return tutor.Message{}, errors.New("stub")
}
func (stubTransport) AnalyzeProfile(context.Context, []tutor.Message) (tutor.UserProfile, error) {
	return tutor.UserProfile{}, errors.New("stub")
}
func (stubTransport) GenerateTotalPlan(context.Context, tutor.UserProfile) (tutor.TotalPlan, error) {
	return tutor.TotalPlan{}, errors.New("stub")
}
func (stubTransport) GenerateWeeklyPlan(context.Context, tutor.UserProfile, int) ([]tutor.WeeklyPlanDay, error) {
	return nil, errors.New("stub")
}
func (stubTransport) CreateLesson(context.Context, assess.CreateLessonRequest) (assess.CreateLessonResult, error) {
	return assess.CreateLessonResult{}, errors.New("stub")
}
func (stubTransport) LessonChat(context.Context, assess.LessonChatRequest) ([]tutor.Message, error) {
	return nil, errors.New("stub")
}

func TestCourses_StarterCatalogWithoutPlan(t *testing.T) {
	s := New(stubTransport{}, store.NewMemory(), zap.NewNop())

	if s.fromPlan {
		t.Error("expected starter catalog")
	}
	if len(s.menu.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.menu.Items))
	}
	if s.menu.Items[0].Label != "Study: Greetings and Introductions in the Workplace" {
		t.Errorf("first label = %q", s.menu.Items[0].Label)
	}
}

func TestCourses_DerivedFromWeeklyPlan(t *testing.T) {
	kv := store.NewMemory()
	week := []tutor.WeeklyPlanDay{
		{DayNumber: 1, Topic: "Ordering food", EstimatedTime: 30},
		{DayNumber: 2, Topic: "Asking directions", EstimatedTime: 25},
	}
	if err := kv.Save(t.Context(), store.KeyWeeklyPlan, week); err != nil {
		t.Fatal(err)
	}
	profile := tutor.UserProfile{EnglishLevel: tutor.LevelBeginner}
	if err := kv.Save(t.Context(), store.KeyProfile, profile); err != nil {
		t.Fatal(err)
	}

	s := New(stubTransport{}, kv, zap.NewNop())

	if !s.fromPlan {
		t.Error("expected plan-derived catalog")
	}
	// One study and one practice entry per day.
	if len(s.menu.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(s.menu.Items))
	}
	if s.menu.Items[1].Label != "Practice: Ordering food" {
		t.Errorf("second label = %q", s.menu.Items[1].Label)
	}
}

func TestCourses_SelectionPushesLesson(t *testing.T) {
	s := New(stubTransport{}, store.NewMemory(), zap.NewNop())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg type = %T, want PushScreenMsg", msg)
	}
	if _, ok := push.Screen.(*lessonscreen.Screen); !ok {
		t.Errorf("pushed screen type = %T", push.Screen)
	}
}

func TestCourses_EscPops(t *testing.T) {
	s := New(stubTransport{}, store.NewMemory(), zap.NewNop())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
