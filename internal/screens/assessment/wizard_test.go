package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// stubTransport implements assess.Transport with canned responses and records
// every call it receives.
type stubTransport struct {
	replies  []tutor.Message
	replyErr error

	profile    tutor.UserProfile
	profileErr error

	plan    tutor.TotalPlan
	planErr error

	days      []tutor.WeeklyPlanDay
	weeklyErr error

	chatCalls    [][]tutor.Message
	analyzeCalls [][]tutor.Message
	planCalls    []tutor.UserProfile
	weeklyCalls  []weeklyCall
}

type weeklyCall struct {
	profile tutor.UserProfile
	day     int
}

func (st *stubTransport) InitialChat(_ context.Context, msgs []tutor.Message) (tutor.Message, error) {
	st.chatCalls = append(st.chatCalls, append([]tutor.Message(nil), msgs...))
	if st.replyErr != nil {
		return tutor.Message{}, st.replyErr
	}
	if len(st.replies) == 0 {
		return tutor.Message{}, errors.New("stub: no replies left")
	}
	reply := st.replies[0]
	st.replies = st.replies[1:]
	return reply, nil
}

func (st *stubTransport) AnalyzeProfile(_ context.Context, msgs []tutor.Message) (tutor.UserProfile, error) {
	st.analyzeCalls = append(st.analyzeCalls, append([]tutor.Message(nil), msgs...))
	return st.profile, st.profileErr
}

func (st *stubTransport) GenerateTotalPlan(_ context.Context, profile tutor.UserProfile) (tutor.TotalPlan, error) {
	st.planCalls = append(st.planCalls, profile)
	return st.plan, st.planErr
}

func (st *stubTransport) GenerateWeeklyPlan(_ context.Context, profile tutor.UserProfile, day int) ([]tutor.WeeklyPlanDay, error) {
	st.weeklyCalls = append(st.weeklyCalls, weeklyCall{profile: profile, day: day})
	return st.days, st.weeklyErr
}

func (st *stubTransport) CreateLesson(context.Context, assess.CreateLessonRequest) (assess.CreateLessonResult, error) {
	return assess.CreateLessonResult{}, errors.New("stub: not implemented")
}

func (st *stubTransport) LessonChat(context.Context, assess.LessonChatRequest) ([]tutor.Message, error) {
	return nil, errors.New("stub: not implemented")
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// runCmd executes a command synchronously and flattens batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds the wizard's own transport-completion messages back into
// Update until the flow settles, skipping spinner ticks and other UI noise.
func deliver(s *WizardScreen, cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case chatReplyMsg, profileReadyMsg, totalPlanMsg, weeklyPlanMsg:
			_, next := s.Update(msg)
			deliver(s, next)
		}
	}
}

func markerReply(text string) tutor.Message {
	return tutor.Message{
		Role:    tutor.RoleAssistant,
		Content: text + "\n" + assess.CompletionMarker,
	}
}

func sampleWeek() []tutor.WeeklyPlanDay {
	return []tutor.WeeklyPlanDay{
		{DayNumber: 1, Topic: "Ordering food", EstimatedTime: 30,
			KnowledgePoints: []tutor.KnowledgePoint{{Name: "polite requests", Level: 2}}},
		{DayNumber: 2, Topic: "Asking directions", EstimatedTime: 30},
	}
}

func newTestWizard(st *stubTransport, onComplete CompleteFunc) (*WizardScreen, *store.Memory) {
	kv := store.NewMemory()
	return New(st, kv, zap.NewNop(), onComplete), kv
}

// Chat replies without the marker keep the wizard on the chat step and never
// trigger profile analysis.
func TestWizard_ChatWithoutMarkerStaysOnChat(t *testing.T) {
	st := &stubTransport{
		replies: []tutor.Message{{Role: tutor.RoleAssistant, Content: "Tell me about your hobbies."}},
	}
	s, _ := newTestWizard(st, nil)
	deliver(s, s.Init())

	state := s.State()
	if state.Step != StepChatting {
		t.Errorf("step = %d, want %d", state.Step, StepChatting)
	}
	if state.Log.Len() != 2 {
		t.Errorf("log length = %d, want 2", state.Log.Len())
	}
	if len(st.analyzeCalls) != 0 {
		t.Errorf("analyze calls = %d, want 0", len(st.analyzeCalls))
	}
	if state.Loading {
		t.Error("expected loading cleared after reply")
	}
}

// A marker reply triggers exactly one profile analysis carrying the full
// conversation, and advances to the review step with a clamped profile.
func TestWizard_MarkerTriggersProfileAnalysis(t *testing.T) {
	st := &stubTransport{
		replies: []tutor.Message{markerReply("Great, I have what I need.")},
		profile: tutor.UserProfile{
			EnglishLevel:    tutor.LevelBeginner,
			Interests:       []string{"movies"},
			StudyTimePerDay: 1000, // clamps to the max
			TotalStudyDay:   2,    // clamps to the min
		},
	}
	s, kv := newTestWizard(st, nil)
	deliver(s, s.Init())

	state := s.State()
	if state.Step != StepProfileReview {
		t.Fatalf("step = %d, want %d", state.Step, StepProfileReview)
	}
	if len(st.analyzeCalls) != 1 {
		t.Fatalf("analyze calls = %d, want 1", len(st.analyzeCalls))
	}
	if got := len(st.analyzeCalls[0]); got != 2 {
		t.Errorf("analyzed conversation length = %d, want 2", got)
	}
	if st.analyzeCalls[0][0].Content != greeting {
		t.Errorf("first analyzed message = %q", st.analyzeCalls[0][0].Content)
	}

	p := state.Profile
	if p.StudyTimePerDay != tutor.MaxStudyMinutes {
		t.Errorf("study time = %d, want %d", p.StudyTimePerDay, tutor.MaxStudyMinutes)
	}
	if p.TotalStudyDay != tutor.MinStudyDays {
		t.Errorf("total days = %d, want %d", p.TotalStudyDay, tutor.MinStudyDays)
	}

	var saved tutor.UserProfile
	if err := kv.Load(t.Context(), store.KeyProfile, &saved); err != nil {
		t.Errorf("profile not persisted: %v", err)
	}
}

// Marker detection is case-sensitive: a lowercase variant is just chat.
func TestWizard_MarkerCaseSensitive(t *testing.T) {
	st := &stubTransport{
		replies: []tutor.Message{{Role: tutor.RoleAssistant, Content: "<assessment_complete>"}},
	}
	s, _ := newTestWizard(st, nil)
	deliver(s, s.Init())

	if s.State().Step != StepChatting {
		t.Errorf("step = %d, want %d", s.State().Step, StepChatting)
	}
	if len(st.analyzeCalls) != 0 {
		t.Errorf("analyze calls = %d, want 0", len(st.analyzeCalls))
	}
}

// Sending a chat reply appends the user turn and calls the transport with the
// whole log.
func TestWizard_ChatSendIncludesFullLog(t *testing.T) {
	st := &stubTransport{
		replies: []tutor.Message{
			{Role: tutor.RoleAssistant, Content: "What do you enjoy?"},
			{Role: tutor.RoleAssistant, Content: "Noted."},
		},
	}
	s, _ := newTestWizard(st, nil)
	deliver(s, s.Init())

	s.input.Model.SetValue("I like movies")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	if len(st.chatCalls) != 2 {
		t.Fatalf("chat calls = %d, want 2", len(st.chatCalls))
	}
	sent := st.chatCalls[1]
	if len(sent) != 3 {
		t.Fatalf("sent conversation length = %d, want 3", len(sent))
	}
	if sent[2].Role != tutor.RoleUser || sent[2].Content != "I like movies" {
		t.Errorf("last sent message = %+v", sent[2])
	}
	if s.State().Log.Len() != 4 {
		t.Errorf("log length = %d, want 4", s.State().Log.Len())
	}
}

// wizardAtProfile drives a fresh wizard through the chat into the profile
// review step.
func wizardAtProfile(t *testing.T, st *stubTransport, onComplete CompleteFunc) *WizardScreen {
	t.Helper()
	if len(st.replies) == 0 {
		st.replies = []tutor.Message{markerReply("Done.")}
	}
	if st.profile.EnglishLevel == "" {
		st.profile = tutor.UserProfile{
			EnglishLevel:    tutor.LevelBeginner,
			Interests:       []string{"movies", "cooking"},
			LearningGoals:   []string{"travel"},
			StudyTimePerDay: 30,
			TotalStudyDay:   30,
		}
	}
	s, _ := newTestWizard(st, onComplete)
	deliver(s, s.Init())
	if s.State().Step != StepProfileReview {
		t.Fatalf("setup: step = %d, want %d", s.State().Step, StepProfileReview)
	}
	return s
}

// Cycling the level commits the edit and regenerates the plan exactly once,
// staying on the review step.
func TestWizard_LevelEditRegeneratesPlan(t *testing.T) {
	st := &stubTransport{
		plan: tutor.TotalPlan{Topics: []tutor.PlanTopic{{DayNumber: 1, Topic: "Basics"}}},
	}
	s := wizardAtProfile(t, st, nil)

	// Cursor starts on the level row.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	state := s.State()
	if state.Profile.EnglishLevel != tutor.LevelIntermediate {
		t.Errorf("level = %q, want %q", state.Profile.EnglishLevel, tutor.LevelIntermediate)
	}
	if len(st.planCalls) != 1 {
		t.Fatalf("plan calls = %d, want 1", len(st.planCalls))
	}
	if st.planCalls[0].EnglishLevel != tutor.LevelIntermediate {
		t.Errorf("plan called with level %q", st.planCalls[0].EnglishLevel)
	}
	if state.Step != StepProfileReview {
		t.Errorf("step = %d, want %d", state.Step, StepProfileReview)
	}
	if state.TotalPlan == nil || len(state.TotalPlan.Topics) != 1 {
		t.Errorf("plan not stored: %+v", state.TotalPlan)
	}
}

// Editing the study time opens a numeric input, clamps the committed value,
// and regenerates once.
func TestWizard_StudyTimeEditClampsAndRegenerates(t *testing.T) {
	st := &stubTransport{}
	s := wizardAtProfile(t, st, nil)

	s.Update(keyPress('j')) // down to study time
	s.Update(specialKey(tea.KeyEnter))
	if s.editing != editStudyTime {
		t.Fatalf("editing = %d, want %d", s.editing, editStudyTime)
	}

	s.editInput.Model.SetValue("1000")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	if got := s.State().Profile.StudyTimePerDay; got != tutor.MaxStudyMinutes {
		t.Errorf("study time = %d, want %d", got, tutor.MaxStudyMinutes)
	}
	if len(st.planCalls) != 1 {
		t.Errorf("plan calls = %d, want 1", len(st.planCalls))
	}
	if s.editing != editNone {
		t.Error("expected edit closed after commit")
	}
}

// Esc discards an in-progress edit without touching the profile or the plan.
func TestWizard_EditDiscard(t *testing.T) {
	st := &stubTransport{}
	s := wizardAtProfile(t, st, nil)

	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))
	s.editInput.Model.SetValue("99")
	s.Update(specialKey(tea.KeyEscape))

	if s.editing != editNone {
		t.Error("expected edit discarded")
	}
	if got := s.State().Profile.StudyTimePerDay; got != 30 {
		t.Errorf("study time = %d, want 30", got)
	}
	if len(st.planCalls) != 0 {
		t.Errorf("plan calls = %d, want 0", len(st.planCalls))
	}
}

// Removing an interest keeps the remaining entries in order and regenerates.
func TestWizard_RemoveInterest(t *testing.T) {
	st := &stubTransport{}
	s := wizardAtProfile(t, st, nil)

	// Rows: level, study time, total days, interest 0, interest 1, ...
	for range 3 {
		s.Update(keyPress('j'))
	}
	_, cmd := s.Update(keyPress('d'))
	deliver(s, cmd)

	p := s.State().Profile
	if len(p.Interests) != 1 || p.Interests[0] != "cooking" {
		t.Errorf("interests = %v, want [cooking]", p.Interests)
	}
	if len(st.planCalls) != 1 {
		t.Errorf("plan calls = %d, want 1", len(st.planCalls))
	}
}

// "Generate Learning Plan" advances to topic selection once the plan arrives.
func TestWizard_GenerateAdvancesToSelection(t *testing.T) {
	st := &stubTransport{
		plan: tutor.TotalPlan{Topics: []tutor.PlanTopic{
			{DayNumber: 1, Topic: "Basics"},
			{DayNumber: 2, Topic: "Small talk"},
			{DayNumber: 3, Topic: "Travel"},
		}},
	}
	s := wizardAtProfile(t, st, nil)

	moveToRow(s, rowGenerate)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	if s.State().Step != StepPlanSelection {
		t.Errorf("step = %d, want %d", s.State().Step, StepPlanSelection)
	}
}

// Selecting a topic sends the profile and the chosen day, and completion fires
// exactly once with a lesson built from the week's first day.
func TestWizard_TopicSelectionCompletesWithLesson(t *testing.T) {
	st := &stubTransport{
		plan: tutor.TotalPlan{Topics: []tutor.PlanTopic{
			{DayNumber: 1, Topic: "Basics"},
			{DayNumber: 2, Topic: "Small talk"},
			{DayNumber: 3, Topic: "Travel"},
		}},
		days: sampleWeek(),
	}

	var completions int
	var gotLesson tutor.Lesson
	var gotLog *tutor.MessageLog
	onComplete := func(lesson tutor.Lesson, log *tutor.MessageLog) tea.Cmd {
		completions++
		gotLesson, gotLog = lesson, log
		return nil
	}

	s := wizardAtProfile(t, st, onComplete)
	moveToRow(s, rowGenerate)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	// Pick day 3.
	s.Update(keyPress('j'))
	s.Update(keyPress('j'))
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	if len(st.weeklyCalls) != 1 {
		t.Fatalf("weekly calls = %d, want 1", len(st.weeklyCalls))
	}
	if st.weeklyCalls[0].day != 3 {
		t.Errorf("selected day = %d, want 3", st.weeklyCalls[0].day)
	}
	if st.weeklyCalls[0].profile.EnglishLevel != tutor.LevelBeginner {
		t.Errorf("profile level = %q", st.weeklyCalls[0].profile.EnglishLevel)
	}

	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
	study, ok := gotLesson.(tutor.StudyLesson)
	if !ok {
		t.Fatalf("lesson type = %T, want StudyLesson", gotLesson)
	}
	if study.EstimatedTime != 30 || len(study.KnowledgePoints) != 1 {
		t.Errorf("lesson not built from day one: %+v", study)
	}
	if !strings.Contains(study.DisplayText, "Asking directions") {
		t.Errorf("display text missing week overview: %q", study.DisplayText)
	}
	if gotLog == nil || gotLog.Len() != s.State().Log.Len() {
		t.Error("conversation log not handed off")
	}
}

// A weekly-plan failure keeps the wizard on the generating step with an error;
// Enter returns to topic selection.
func TestWizard_WeeklyPlanFailureRecovers(t *testing.T) {
	st := &stubTransport{
		plan: tutor.TotalPlan{Topics: []tutor.PlanTopic{
			{DayNumber: 1, Topic: "Basics"},
		}},
		weeklyErr: errors.New("model rejected the request"),
	}
	s := wizardAtProfile(t, st, nil)
	moveToRow(s, rowGenerate)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	state := s.State()
	if state.Step != StepWeeklyPlanGenerating {
		t.Fatalf("step = %d, want %d", state.Step, StepWeeklyPlanGenerating)
	}
	if state.Error == "" {
		t.Error("expected error message")
	}
	if state.Loading {
		t.Error("expected loading cleared")
	}

	// Enter goes back to selection.
	s.Update(specialKey(tea.KeyEnter))
	if s.State().Step != StepPlanSelection {
		t.Errorf("step after recovery = %d, want %d", s.State().Step, StepPlanSelection)
	}
	if s.State().Error != "" {
		t.Error("expected error cleared after recovery")
	}
}

// A chat failure surfaces an error on the chat step without advancing.
func TestWizard_ChatFailureStaysPut(t *testing.T) {
	st := &stubTransport{replyErr: errors.New("rate limited")}
	s, _ := newTestWizard(st, nil)
	deliver(s, s.Init())

	state := s.State()
	if state.Step != StepChatting {
		t.Errorf("step = %d, want %d", state.Step, StepChatting)
	}
	if state.Error == "" {
		t.Error("expected error message")
	}
	if state.Loading {
		t.Error("expected loading cleared")
	}
}

// Keys other than cancel are ignored while a call is in flight.
func TestWizard_LoadingGatesInput(t *testing.T) {
	st := &stubTransport{}
	s := wizardAtProfile(t, st, nil)
	s.setLoading("busy")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	if len(st.planCalls) != 0 {
		t.Errorf("plan calls = %d, want 0", len(st.planCalls))
	}
	if s.State().Profile.EnglishLevel != tutor.LevelBeginner {
		t.Errorf("level changed while loading: %q", s.State().Profile.EnglishLevel)
	}
}

// Esc walks backwards: selection to review, review to chat, chat pops the
// screen.
func TestWizard_BackEdges(t *testing.T) {
	st := &stubTransport{
		plan: tutor.TotalPlan{Topics: []tutor.PlanTopic{{DayNumber: 1, Topic: "Basics"}}},
	}
	s := wizardAtProfile(t, st, nil)
	moveToRow(s, rowGenerate)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	s.Update(specialKey(tea.KeyEscape))
	if s.State().Step != StepProfileReview {
		t.Fatalf("step = %d, want %d", s.State().Step, StepProfileReview)
	}
	s.Update(specialKey(tea.KeyEscape))
	if s.State().Step != StepChatting {
		t.Fatalf("step = %d, want %d", s.State().Step, StepChatting)
	}

	_, cmd = s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command from chat step")
	}
}

// Closing the wizard cancels its context so in-flight calls abort.
func TestWizard_CloseCancelsContext(t *testing.T) {
	s, _ := newTestWizard(&stubTransport{replies: []tutor.Message{{Role: tutor.RoleAssistant}}}, nil)
	s.Close()
	select {
	case <-s.ctx.Done():
	default:
		t.Error("expected context cancelled after Close")
	}
}

func TestWizard_View(t *testing.T) {
	st := &stubTransport{}
	s := wizardAtProfile(t, st, nil)
	for _, step := range []Step{StepChatting, StepProfileReview, StepPlanSelection, StepWeeklyPlanGenerating} {
		s.state.Step = step
		if s.View(80, 24) == "" {
			t.Errorf("empty view for step %d", step)
		}
		if len(s.KeyHints()) == 0 && step != StepWeeklyPlanGenerating {
			t.Errorf("no key hints for step %d", step)
		}
	}
}

// moveToRow moves the profile cursor to the first row of the given kind.
func moveToRow(s *WizardScreen, kind rowKind) {
	for i, row := range s.profileRows() {
		if row.kind == kind {
			for s.profileCursor < i {
				s.Update(keyPress('j'))
			}
			return
		}
	}
	panic(fmt.Sprintf("no row of kind %d", kind))
}
