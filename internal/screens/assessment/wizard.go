// Package assessment implements the four-step assessment wizard: chat with
// the tutor, review the derived profile, pick a study topic, and wait for the
// weekly plan. Completion hands a synthesized lesson plus the conversation
// log to the caller.
package assessment

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	"github.com/slggamerTrue/languageLearning/internal/store"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
)

// Step is the wizard's current stage. Steps only advance forward except for
// the two back edges (2→1, 3→2) and the step-4 error recovery (4→3).
type Step int

const (
	StepChatting Step = iota + 1
	StepProfileReview
	StepPlanSelection
	StepWeeklyPlanGenerating
)

// greeting is the synthesized user turn that opens every assessment.
const greeting = "Hello, I would like to improve my English. Can you help me assess my current level?"

// WizardState is the aggregate the wizard owns. Single writer: the wizard
// itself, reacting to user actions and transport completions.
type WizardState struct {
	Step             Step
	Log              *tutor.MessageLog
	Profile          *tutor.UserProfile
	TotalPlan        *tutor.TotalPlan
	SelectedTopicDay int
	WeeklyPlan       []tutor.WeeklyPlanDay
	Loading          bool
	LoadingStatus    string
	Error            string
}

// CompleteFunc receives the finished lesson and the conversation log.
// Ownership of the log transfers to the callee.
type CompleteFunc func(lesson tutor.Lesson, log *tutor.MessageLog) tea.Cmd

// editKind discriminates the active inline edit on the profile view.
type editKind int

const (
	editNone editKind = iota
	editStudyTime
	editTotalDays
	editAddInterest
	editAddGoal
)

// WizardScreen drives the assessment flow.
type WizardScreen struct {
	state     WizardState
	transport assess.Transport
	kv        store.KV
	logger    *zap.Logger

	onComplete CompleteFunc
	completed  bool

	// Calls are bound to this context; Close cancels it so an abandoned
	// wizard aborts its in-flight request instead of orphaning it.
	ctx    context.Context
	cancel context.CancelFunc

	input components.TextInput
	spin  components.Spinner

	editing   editKind
	editInput components.TextInput

	profileCursor int
	planCursor    int
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)
var _ screen.Closer = (*WizardScreen)(nil)

// New creates a wizard with a fresh message log. A new wizard never reuses a
// previous session's log.
func New(transport assess.Transport, kv store.KV, logger *zap.Logger, onComplete CompleteFunc) *WizardScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &WizardScreen{
		state: WizardState{
			Step: StepChatting,
			Log:  tutor.NewMessageLog(),
		},
		transport:  transport,
		kv:         kv,
		logger:     logger,
		onComplete: onComplete,
		ctx:        ctx,
		cancel:     cancel,
		input:      components.NewTextInput("Type your reply...", false, 500),
		spin:       components.NewSpinner("Preparing your assessment..."),
	}
}

// State exposes the wizard state for tests.
func (s *WizardScreen) State() WizardState {
	return s.state
}

func (s *WizardScreen) Init() tea.Cmd {
	s.state.Log.Append(tutor.Message{Role: tutor.RoleUser, Content: greeting})
	s.setLoading("Preparing your assessment...")
	return tea.Batch(s.callInitialChat(), s.spin.Tick(), s.input.Init())
}

func (s *WizardScreen) Title() string {
	switch s.state.Step {
	case StepProfileReview:
		return "Your Profile"
	case StepPlanSelection:
		return "Choose a Topic"
	case StepWeeklyPlanGenerating:
		return "Building Your Plan"
	default:
		return "Assessment"
	}
}

// Close cancels any in-flight transport call.
func (s *WizardScreen) Close() {
	s.cancel()
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	if s.state.Loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	switch s.state.Step {
	case StepChatting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Cancel"},
		}
	case StepProfileReview:
		if s.editing != editNone {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Apply"},
				{Key: "Esc", Description: "Discard"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Edit/Select"},
			{Key: "D", Description: "Remove item"},
		}
	case StepPlanSelection:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		if s.state.Error != "" {
			return []layout.KeyHint{{Key: "Enter", Description: "Go Back"}}
		}
		return nil
	}
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		return s.handleChatReply(msg)
	case profileReadyMsg:
		return s.handleProfileReady(msg)
	case totalPlanMsg:
		return s.handleTotalPlan(msg)
	case weeklyPlanMsg:
		return s.handleWeeklyPlan(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state.Loading {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}
	if s.state.Step == StepChatting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// handleKey routes keys by step. Inputs are disabled while a transport call
// is in flight; only cancel remains available.
func (s *WizardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" && s.editing == editNone {
		return s.handleBack()
	}
	if s.state.Loading {
		return s, nil
	}

	switch s.state.Step {
	case StepChatting:
		return s.handleChatKey(msg)
	case StepProfileReview:
		return s.handleProfileKey(msg)
	case StepPlanSelection:
		return s.handlePlanKey(msg)
	case StepWeeklyPlanGenerating:
		if s.state.Error != "" && msg.String() == "enter" {
			// Explicit recovery: back to topic selection.
			s.state.Error = ""
			s.state.Step = StepPlanSelection
		}
		return s, nil
	}
	return s, nil
}

// handleBack walks one step backwards, or cancels the wizard entirely from
// the chat step. A cancel mid-call aborts the request via the context.
func (s *WizardScreen) handleBack() (screen.Screen, tea.Cmd) {
	switch s.state.Step {
	case StepProfileReview:
		s.state.Step = StepChatting
		s.state.Error = ""
		return s, nil
	case StepPlanSelection:
		s.state.Step = StepProfileReview
		s.state.Error = ""
		s.profileCursor = 0
		return s, nil
	default:
		return s, popCmd()
	}
}

func (s *WizardScreen) handleChatKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		s.state.Log.Append(tutor.Message{Role: tutor.RoleUser, Content: text})
		s.input.Reset()
		s.setLoading("Thinking...")
		return s, tea.Batch(s.callInitialChat(), s.spin.Tick())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *WizardScreen) handlePlanKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	plan := s.state.TotalPlan
	if plan == nil || len(plan.Topics) == 0 {
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.planCursor > 0 {
			s.planCursor--
		}
	case "down", "j":
		if s.planCursor < len(plan.Topics)-1 {
			s.planCursor++
		}
	case "enter":
		if s.state.Profile == nil {
			s.state.Error = "No profile available. Go back and complete the assessment first."
			return s, nil
		}
		topic := plan.Topics[s.planCursor]
		s.state.SelectedTopicDay = topic.DayNumber
		s.state.Step = StepWeeklyPlanGenerating
		s.setLoading("Creating your weekly study plan...")
		return s, tea.Batch(s.callWeeklyPlan(*s.state.Profile, topic.DayNumber), s.spin.Tick())
	}
	return s, nil
}

func (s *WizardScreen) handleChatReply(msg chatReplyMsg) (screen.Screen, tea.Cmd) {
	s.clearLoading()
	if msg.Err != nil {
		return s.fail("The tutor could not be reached. Please try again.", msg.Err)
	}

	s.state.Log.Append(msg.Msg)

	if assess.ContainsCompletionMarker(msg.Msg.Content) {
		s.persist(store.KeyConversation, s.state.Log.All())
		s.setLoading("Analyzing your profile...")
		return s, tea.Batch(s.callAnalyzeProfile(), s.spin.Tick())
	}
	return s, nil
}

func (s *WizardScreen) handleProfileReady(msg profileReadyMsg) (screen.Screen, tea.Cmd) {
	s.clearLoading()
	if msg.Err != nil {
		return s.fail("Profile analysis failed. Please try again.", msg.Err)
	}

	profile := msg.Profile
	profile.Clamp()
	s.state.Profile = &profile
	s.state.Step = StepProfileReview
	s.profileCursor = 0
	s.persist(store.KeyProfile, profile)
	return s, nil
}

func (s *WizardScreen) handleTotalPlan(msg totalPlanMsg) (screen.Screen, tea.Cmd) {
	s.clearLoading()
	if msg.Err != nil {
		return s.fail("Could not generate a learning plan. Please try again.", msg.Err)
	}

	plan := msg.Plan
	s.state.TotalPlan = &plan
	s.persist(store.KeyTotalPlan, plan)
	if msg.Advance {
		s.state.Step = StepPlanSelection
		s.planCursor = 0
	}
	return s, nil
}

func (s *WizardScreen) handleWeeklyPlan(msg weeklyPlanMsg) (screen.Screen, tea.Cmd) {
	s.clearLoading()
	if msg.Err != nil {
		// Stay on step 4; the error view offers "Go Back".
		return s.fail("Weekly plan generation failed.", msg.Err)
	}

	s.state.WeeklyPlan = msg.Days
	s.persist(store.KeyWeeklyPlan, msg.Days)

	lesson, err := tutor.SynthesizeStudyLesson(*s.state.Profile, msg.Days)
	if err != nil {
		return s.fail("Weekly plan generation failed.", err)
	}

	if s.completed || s.onComplete == nil {
		return s, nil
	}
	s.completed = true
	return s, s.onComplete(lesson, s.state.Log)
}

// regenerate refreshes the topic plan after a profile change. Exactly one
// call per committed edit.
func (s *WizardScreen) regenerate() tea.Cmd {
	s.persist(store.KeyProfile, *s.state.Profile)
	s.setLoading("Updating your learning plan...")
	return tea.Batch(s.callTotalPlan(*s.state.Profile, false), s.spin.Tick())
}

func (s *WizardScreen) setLoading(status string) {
	s.state.Loading = true
	s.state.LoadingStatus = status
	s.state.Error = ""
	s.spin.Status = status
}

func (s *WizardScreen) clearLoading() {
	s.state.Loading = false
	s.state.LoadingStatus = ""
}

// fail records a transport failure: loading cleared, error text set, step
// unchanged, no automatic retry.
func (s *WizardScreen) fail(friendly string, err error) (screen.Screen, tea.Cmd) {
	s.logger.Warn("wizard transport call failed", zap.Int("step", int(s.state.Step)), zap.Error(err))
	s.state.Error = friendly
	return s, nil
}

func (s *WizardScreen) persist(key string, value any) {
	if err := s.kv.Save(s.ctx, key, value); err != nil {
		s.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

func popCmd() tea.Cmd {
	return func() tea.Msg {
		return router.PopScreenMsg{}
	}
}

// Transport call commands. Each captures the wizard's context and the state
// it needs, then runs off the update loop.

func (s *WizardScreen) callInitialChat() tea.Cmd {
	ctx, t, msgs := s.ctx, s.transport, s.state.Log.All()
	return func() tea.Msg {
		reply, err := t.InitialChat(ctx, msgs)
		return chatReplyMsg{Msg: reply, Err: err}
	}
}

func (s *WizardScreen) callAnalyzeProfile() tea.Cmd {
	ctx, t, msgs := s.ctx, s.transport, s.state.Log.All()
	return func() tea.Msg {
		profile, err := t.AnalyzeProfile(ctx, msgs)
		return profileReadyMsg{Profile: profile, Err: err}
	}
}

func (s *WizardScreen) callTotalPlan(profile tutor.UserProfile, advance bool) tea.Cmd {
	ctx, t := s.ctx, s.transport
	return func() tea.Msg {
		plan, err := t.GenerateTotalPlan(ctx, profile)
		return totalPlanMsg{Plan: plan, Advance: advance, Err: err}
	}
}

func (s *WizardScreen) callWeeklyPlan(profile tutor.UserProfile, day int) tea.Cmd {
	ctx, t := s.ctx, s.transport
	return func() tea.Msg {
		days, err := t.GenerateWeeklyPlan(ctx, profile, day)
		return weeklyPlanMsg{Days: days, Err: err}
	}
}
