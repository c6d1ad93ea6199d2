package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// stubTransport returns canned values per operation.
type stubTransport struct {
	chatMsg    tutor.Message
	profile    tutor.UserProfile
	totalPlan  tutor.TotalPlan
	weeklyPlan []tutor.WeeklyPlanDay
	lesson     assessment.CreateLessonResult
	chatOut    []tutor.Message
	err        error

	lastWeeklyDay int
}

func (s *stubTransport) InitialChat(_ context.Context, _ []tutor.Message) (tutor.Message, error) {
	return s.chatMsg, s.err
}

func (s *stubTransport) AnalyzeProfile(_ context.Context, _ []tutor.Message) (tutor.UserProfile, error) {
	return s.profile, s.err
}

func (s *stubTransport) GenerateTotalPlan(_ context.Context, _ tutor.UserProfile) (tutor.TotalPlan, error) {
	return s.totalPlan, s.err
}

func (s *stubTransport) GenerateWeeklyPlan(_ context.Context, _ tutor.UserProfile, day int) ([]tutor.WeeklyPlanDay, error) {
	s.lastWeeklyDay = day
	return s.weeklyPlan, s.err
}

func (s *stubTransport) CreateLesson(_ context.Context, _ assessment.CreateLessonRequest) (assessment.CreateLessonResult, error) {
	return s.lesson, s.err
}

func (s *stubTransport) LessonChat(_ context.Context, _ assessment.LessonChatRequest) ([]tutor.Message, error) {
	return s.chatOut, s.err
}

func newTestServer(stub *stubTransport) *Server {
	return New(DefaultConfig(), stub, zap.NewNop())
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestInitialChatEndpoint(t *testing.T) {
	stub := &stubTransport{
		chatMsg: tutor.Message{Role: tutor.RoleAssistant, Content: "Hello! What brings you here?"},
	}
	w := postJSON(t, newTestServer(stub), "/api/assessment/initial-chat", []tutor.Message{
		{Role: tutor.RoleUser, Content: "Hi"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var msg tutor.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Content != "Hello! What brings you here?" {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestGenerateWeeklyPlanEndpoint(t *testing.T) {
	stub := &stubTransport{
		weeklyPlan: []tutor.WeeklyPlanDay{{DayNumber: 1, Topic: "Greetings"}},
	}
	w := postJSON(t, newTestServer(stub), "/api/assessment/generate-weekly-plan", map[string]any{
		"english_level": "beginner",
		"selected_day":  3,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if stub.lastWeeklyDay != 3 {
		t.Errorf("selected_day not forwarded: %d", stub.lastWeeklyDay)
	}

	// Response is the bare day array, not an object wrapper.
	var days []tutor.WeeklyPlanDay
	if err := json.Unmarshal(w.Body.Bytes(), &days); err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Topic != "Greetings" {
		t.Errorf("days = %+v", days)
	}
}

func TestCreateLessonEndpoint_TagsMode(t *testing.T) {
	stub := &stubTransport{
		lesson: assessment.CreateLessonResult{
			Lesson: tutor.StudyLesson{Topic: "Past tense"},
			History: []tutor.Message{
				{Role: tutor.RoleAssistant, Content: "Welcome."},
			},
		},
	}
	w := postJSON(t, newTestServer(stub), "/api/lesson/create", map[string]any{
		"mode":  "study",
		"topic": "Past tense",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var out struct {
		Lesson  json.RawMessage `json:"lesson"`
		History []tutor.Message `json:"conversation_history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	lesson, err := tutor.UnmarshalLesson(out.Lesson)
	if err != nil {
		t.Fatalf("lesson missing mode tag: %v", err)
	}
	if lesson.Mode() != tutor.ModeStudy {
		t.Errorf("mode = %q", lesson.Mode())
	}
}

func TestLessonChatEndpoint_RoundTripsUnion(t *testing.T) {
	stub := &stubTransport{
		chatOut: []tutor.Message{
			{Role: tutor.RoleUser, Content: "Hello"},
			{Role: tutor.RoleAssistant, Content: "Hi!"},
		},
	}
	w := postJSON(t, newTestServer(stub), "/api/lesson/chat", map[string]any{
		"lesson":               map[string]any{"mode": "practice", "topic": "Market", "scene": map[string]any{}},
		"conversation_history": []any{},
		"user_input":           "Hello",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var out struct {
		History []tutor.Message `json:"conversation_history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.History) != 2 {
		t.Errorf("history = %+v", out.History)
	}
}

func TestLessonChatEndpoint_RejectsUnknownMode(t *testing.T) {
	w := postJSON(t, newTestServer(&stubTransport{}), "/api/lesson/chat", map[string]any{
		"lesson":     map[string]any{"mode": "review"},
		"user_input": "Hello",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestTransportFailureBecomes500(t *testing.T) {
	stub := &stubTransport{err: errors.New("model unavailable")}
	w := postJSON(t, newTestServer(stub), "/api/assessment/generate-total-plan", tutor.UserProfile{})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Detail != "model unavailable" {
		t.Errorf("detail = %q", body.Detail)
	}
}

func TestHealthcheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	newTestServer(&stubTransport{}).Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
