package lesson

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

type stubTransport struct {
	createResult assess.CreateLessonResult
	createErr    error
	createCalls  []assess.CreateLessonRequest

	chatHistory []tutor.Message
	chatErr     error
	chatCalls   []assess.LessonChatRequest
}

func (st *stubTransport) InitialChat(context.Context, []tutor.Message) (tutor.Message, error) {
	return tutor.Message{}, errors.New("stub: not implemented")
}

func (st *stubTransport) AnalyzeProfile(context.Context, []tutor.Message) (tutor.UserProfile, error) {
	return tutor.UserProfile{}, errors.New("stub: not implemented")
}

func (st *stubTransport) GenerateTotalPlan(context.Context, tutor.UserProfile) (tutor.TotalPlan, error) {
	return tutor.TotalPlan{}, errors.New("stub: not implemented")
}

func (st *stubTransport) GenerateWeeklyPlan(context.Context, tutor.UserProfile, int) ([]tutor.WeeklyPlanDay, error) {
	return nil, errors.New("stub: not implemented")
}

func (st *stubTransport) CreateLesson(_ context.Context, req assess.CreateLessonRequest) (assess.CreateLessonResult, error) {
	st.createCalls = append(st.createCalls, req)
	return st.createResult, st.createErr
}

func (st *stubTransport) LessonChat(_ context.Context, req assess.LessonChatRequest) ([]tutor.Message, error) {
	st.chatCalls = append(st.chatCalls, req)
	return st.chatHistory, st.chatErr
}

// deliver runs a command tree synchronously, feeding lesson messages back
// into Update.
func deliver(s *Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(s, c)
		}
		return
	}
	switch msg.(type) {
	case createdMsg, replyMsg:
		_, next := s.Update(msg)
		deliver(s, next)
	}
}

func sampleLesson() tutor.StudyLesson {
	return tutor.StudyLesson{
		Topic:       "Ordering food",
		SpeechText:  "Let's learn how to order food!",
		DisplayText: "# Ordering Food\n\nToday we practice polite requests.",
	}
}

func openingHistory() []tutor.Message {
	return []tutor.Message{
		{Role: tutor.RoleAssistant, Content: "Let's learn how to order food!",
			DisplayText: "# Ordering Food"},
	}
}

func TestLesson_HandoffSkipsCreate(t *testing.T) {
	st := &stubTransport{}
	s := New(st, zap.NewNop(), sampleLesson(), openingHistory())
	deliver(s, s.Init())

	if len(st.createCalls) != 0 {
		t.Errorf("create calls = %d, want 0", len(st.createCalls))
	}
	if s.loading {
		t.Error("expected no loading for handoff lesson")
	}
	if len(s.history) != 1 {
		t.Errorf("history length = %d, want 1", len(s.history))
	}
}

func TestLesson_CreateOnEntry(t *testing.T) {
	st := &stubTransport{
		createResult: assess.CreateLessonResult{
			Lesson:  sampleLesson(),
			History: openingHistory(),
		},
	}
	req := assess.CreateLessonRequest{Mode: tutor.ModeStudy, Topic: "Ordering food"}
	s := NewFromRequest(st, zap.NewNop(), req)
	deliver(s, s.Init())

	if len(st.createCalls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(st.createCalls))
	}
	if st.createCalls[0].Mode != tutor.ModeStudy {
		t.Errorf("mode = %q", st.createCalls[0].Mode)
	}
	if s.lesson == nil || s.lesson.Title() != "Ordering food" {
		t.Errorf("lesson = %+v", s.lesson)
	}
	if s.Title() != "Lesson: Ordering food" {
		t.Errorf("title = %q", s.Title())
	}
}

func TestLesson_CreateFailureShowsError(t *testing.T) {
	st := &stubTransport{createErr: errors.New("model unavailable")}
	s := NewFromRequest(st, zap.NewNop(), assess.CreateLessonRequest{Mode: tutor.ModeStudy})
	deliver(s, s.Init())

	if s.errMsg == "" {
		t.Error("expected error message")
	}
	if s.loading {
		t.Error("expected loading cleared")
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}
}

func TestLesson_SendReplacesHistory(t *testing.T) {
	st := &stubTransport{
		chatHistory: []tutor.Message{
			{Role: tutor.RoleAssistant, Content: "Let's learn how to order food!"},
			{Role: tutor.RoleUser, Content: "Can I see the menu?"},
			{Role: tutor.RoleAssistant, Content: "Of course! Here it is."},
		},
	}
	s := New(st, zap.NewNop(), sampleLesson(), openingHistory())
	deliver(s, s.Init())

	s.input.Model.SetValue("Can I see the menu?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	deliver(s, cmd)

	if len(st.chatCalls) != 1 {
		t.Fatalf("chat calls = %d, want 1", len(st.chatCalls))
	}
	call := st.chatCalls[0]
	if call.UserInput != "Can I see the menu?" {
		t.Errorf("user input = %q", call.UserInput)
	}
	if call.Lesson.Title() != "Ordering food" {
		t.Errorf("lesson = %q", call.Lesson.Title())
	}
	if len(call.History) != 1 {
		t.Errorf("sent history length = %d, want 1", len(call.History))
	}
	if len(s.history) != 3 {
		t.Errorf("history length = %d, want 3", len(s.history))
	}
}

func TestLesson_ChatFailureKeepsHistory(t *testing.T) {
	st := &stubTransport{chatErr: errors.New("rate limited")}
	s := New(st, zap.NewNop(), sampleLesson(), openingHistory())
	deliver(s, s.Init())

	s.input.Model.SetValue("hello")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	deliver(s, cmd)

	if s.errMsg == "" {
		t.Error("expected error message")
	}
	if len(s.history) != 1 {
		t.Errorf("history length = %d, want 1", len(s.history))
	}
}

func TestLesson_EscPops(t *testing.T) {
	s := New(&stubTransport{}, zap.NewNop(), sampleLesson(), openingHistory())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
}

func TestLesson_PracticeTitle(t *testing.T) {
	practice := tutor.PracticeLesson{
		Topic: "At the airport",
		Scene: tutor.Scene{Description: "Checking in for a flight"},
	}
	s := New(&stubTransport{}, zap.NewNop(), practice, nil)
	if s.Title() != "Practice: At the airport" {
		t.Errorf("title = %q", s.Title())
	}
}
