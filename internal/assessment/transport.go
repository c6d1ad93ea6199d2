// Package assessment defines the transport consumed by the assessment wizard
// and the lesson views, plus a local LLM-backed implementation of it. The
// wizard never talks to a model or an HTTP server directly; it talks to a
// Transport.
package assessment

import (
	"context"
	"strings"

	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// CompletionMarker is the literal the tutor emits once it has collected
// enough information. Detection is an exact, case-sensitive substring match
// on assistant content; nothing else advances the wizard past the chat step.
const CompletionMarker = "<ASSESSMENT_COMPLETE>"

// ContainsCompletionMarker reports whether the content carries the marker.
func ContainsCompletionMarker(content string) bool {
	return strings.Contains(content, CompletionMarker)
}

// Transport is the set of remote operations the wizard and lesson views
// consume. Every call is bound to the caller's context so cancelling the
// owning screen aborts in-flight requests.
type Transport interface {
	// InitialChat sends the full conversation so far and returns the next
	// assistant turn.
	InitialChat(ctx context.Context, messages []tutor.Message) (tutor.Message, error)

	// AnalyzeProfile derives a structured learner profile from the finished
	// assessment conversation.
	AnalyzeProfile(ctx context.Context, messages []tutor.Message) (tutor.UserProfile, error)

	// GenerateTotalPlan proposes candidate study topics for the profile.
	GenerateTotalPlan(ctx context.Context, profile tutor.UserProfile) (tutor.TotalPlan, error)

	// GenerateWeeklyPlan expands the selected topic into a 7-day curriculum.
	GenerateWeeklyPlan(ctx context.Context, profile tutor.UserProfile, selectedDay int) ([]tutor.WeeklyPlanDay, error)

	// CreateLesson builds a lesson and its opening assistant turn.
	CreateLesson(ctx context.Context, req CreateLessonRequest) (CreateLessonResult, error)

	// LessonChat advances a lesson conversation by one user turn and returns
	// the full updated history.
	LessonChat(ctx context.Context, req LessonChatRequest) ([]tutor.Message, error)
}

// CreateLessonRequest describes the lesson to build. Study lessons come from
// a weekly-plan day (AssessmentDay); practice lessons from a role-play Scene.
type CreateLessonRequest struct {
	Mode          tutor.LessonMode     `json:"mode"`
	Topic         string               `json:"topic"`
	Scene         *tutor.Scene         `json:"scene,omitempty"`
	AssessmentDay *tutor.WeeklyPlanDay `json:"assessment_day,omitempty"`
	Profile       *tutor.UserProfile   `json:"profile,omitempty"`
}

// CreateLessonResult carries the constructed lesson and the opening turn(s).
type CreateLessonResult struct {
	Lesson  tutor.Lesson
	History []tutor.Message
}

// LessonChatRequest is one user turn inside an ongoing lesson.
type LessonChatRequest struct {
	Lesson    tutor.Lesson
	History   []tutor.Message
	UserInput string
}
