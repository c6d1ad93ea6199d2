// Package lesson hosts the interactive lesson chat: a study walkthrough or a
// role-play practice, both driven by the same transport.
package lesson

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/render"
	"github.com/slggamerTrue/languageLearning/internal/router"
	"github.com/slggamerTrue/languageLearning/internal/screen"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
	"github.com/slggamerTrue/languageLearning/internal/ui/layout"
)

type createdMsg struct {
	Result assess.CreateLessonResult
	Err    error
}

type replyMsg struct {
	History []tutor.Message
	Err     error
}

// Screen is the lesson chat view. It is constructed either with a ready
// lesson (the assessment handoff) or with a create request that the
// transport resolves on entry.
type Screen struct {
	transport assess.Transport
	logger    *zap.Logger

	sessionID string
	createReq *assess.CreateLessonRequest

	lesson  tutor.Lesson
	history []tutor.Message

	ctx    context.Context
	cancel context.CancelFunc

	input    components.TextInput
	spin     components.Spinner
	markdown *render.Renderer

	loading bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)

// New creates a lesson screen around an already-built lesson and its opening
// history. Used by the assessment handoff, where the lesson is synthesized
// locally.
func New(transport assess.Transport, logger *zap.Logger, lesson tutor.Lesson, history []tutor.Message) *Screen {
	s := newScreen(transport, logger)
	s.lesson = lesson
	s.history = append([]tutor.Message(nil), history...)
	return s
}

// NewFromRequest creates a lesson screen that asks the transport to build the
// lesson on entry. Used by the course browser and the practice builder.
func NewFromRequest(transport assess.Transport, logger *zap.Logger, req assess.CreateLessonRequest) *Screen {
	s := newScreen(transport, logger)
	s.createReq = &req
	return s
}

func newScreen(transport assess.Transport, logger *zap.Logger) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{
		transport: transport,
		logger:    logger,
		sessionID: uuid.New().String(),
		ctx:       ctx,
		cancel:    cancel,
		input:     components.NewTextInput("Say something...", false, 500),
		spin:      components.NewSpinner("Preparing your lesson..."),
		markdown:  render.New(76),
	}
}

func (s *Screen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if s.createReq != nil {
		s.loading = true
		cmds = append(cmds, s.callCreate(), s.spin.Tick())
	}
	return tea.Batch(cmds...)
}

func (s *Screen) Title() string {
	if s.lesson == nil {
		return "Lesson"
	}
	switch s.lesson.Mode() {
	case tutor.ModePractice:
		return "Practice: " + s.lesson.Title()
	default:
		return "Lesson: " + s.lesson.Title()
	}
}

// Close aborts any in-flight transport call.
func (s *Screen) Close() {
	s.cancel()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Leave"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Leave lesson"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		return s.handleCreated(msg)
	case replyMsg:
		return s.handleReply(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.loading {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		if s.loading || s.lesson == nil {
			return s, nil
		}
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		s.input.Reset()
		s.loading = true
		s.spin.Status = "Thinking..."
		s.errMsg = ""
		return s, tea.Batch(s.callChat(text), s.spin.Tick())
	}

	if s.loading {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleCreated(msg createdMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.logger.Warn("lesson create failed",
			zap.String("session", s.sessionID), zap.Error(msg.Err))
		s.errMsg = "Could not start the lesson. Press Esc to go back."
		return s, nil
	}
	s.lesson = msg.Result.Lesson
	s.history = append([]tutor.Message(nil), msg.Result.History...)
	return s, nil
}

func (s *Screen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.logger.Warn("lesson chat failed",
			zap.String("session", s.sessionID), zap.Error(msg.Err))
		s.errMsg = "The tutor could not be reached. Please try again."
		return s, nil
	}
	s.history = msg.History
	return s, nil
}

func (s *Screen) callCreate() tea.Cmd {
	ctx, t, req := s.ctx, s.transport, *s.createReq
	return func() tea.Msg {
		result, err := t.CreateLesson(ctx, req)
		return createdMsg{Result: result, Err: err}
	}
}

func (s *Screen) callChat(text string) tea.Cmd {
	ctx, t := s.ctx, s.transport
	req := assess.LessonChatRequest{
		Lesson:    s.lesson,
		History:   append([]tutor.Message(nil), s.history...),
		UserInput: text,
	}
	return func() tea.Msg {
		history, err := t.LessonChat(ctx, req)
		return replyMsg{History: history, Err: err}
	}
}
