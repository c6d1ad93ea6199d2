package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LessonMode discriminates the two lesson variants on the wire.
type LessonMode string

const (
	ModeStudy    LessonMode = "study"
	ModePractice LessonMode = "practice"
)

// Lesson is a closed tagged union: exactly StudyLesson or PracticeLesson.
// Consumers branch on Mode() (or type-switch); adding a variant breaks every
// switch at compile time via the sealed marker.
type Lesson interface {
	Mode() LessonMode
	Title() string
	sealedLesson()
}

// SceneResource is supplementary material shown inside a practice scene
// (a menu, a map, a document).
type SceneResource struct {
	ResourceType  string `json:"resource_type"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	DisplayFormat string `json:"display_format"`
	SpeechText    string `json:"speechText,omitempty"`
}

// Scene describes a role-play setting for a practice lesson.
type Scene struct {
	Description      string          `json:"description"`
	YourRole         string          `json:"your_role"`
	StudentRole      string          `json:"student_role"`
	AdditionalInfo   string          `json:"additional_info"`
	CurrentSituation string          `json:"current_situation"`
	Resources        []SceneResource `json:"resources,omitempty"`
}

// StudyLesson is a structured teaching unit built from a weekly-plan day.
type StudyLesson struct {
	Topic            string           `json:"topic"`
	SpeechText       string           `json:"speechText"`
	DisplayText      string           `json:"displayText"`
	KnowledgePoints  []KnowledgePoint `json:"knowledge_points"`
	DayNumber        int              `json:"day_number,omitempty"`
	Materials        []Material       `json:"materials"`
	ReviewActivities []ReviewActivity `json:"review_activities"`
	EstimatedTime    int              `json:"estimated_time"`
}

func (StudyLesson) Mode() LessonMode { return ModeStudy }
func (l StudyLesson) Title() string  { return l.Topic }
func (StudyLesson) sealedLesson()    {}

// PracticeLesson is a role-play scenario unit.
type PracticeLesson struct {
	Topic       string `json:"topic"`
	SpeechText  string `json:"speechText"`
	DisplayText string `json:"displayText"`
	Scene       Scene  `json:"scene"`
}

func (PracticeLesson) Mode() LessonMode { return ModePractice }
func (l PracticeLesson) Title() string  { return l.Topic }
func (PracticeLesson) sealedLesson()    {}

// MarshalJSON adds the mode discriminator to the study variant.
func (l StudyLesson) MarshalJSON() ([]byte, error) {
	type wire StudyLesson
	return json.Marshal(struct {
		Mode LessonMode `json:"mode"`
		wire
	}{ModeStudy, wire(l)})
}

// MarshalJSON adds the mode discriminator to the practice variant.
func (l PracticeLesson) MarshalJSON() ([]byte, error) {
	type wire PracticeLesson
	return json.Marshal(struct {
		Mode LessonMode `json:"mode"`
		wire
	}{ModePractice, wire(l)})
}

// UnmarshalLesson decodes a lesson by its mode tag. An unknown or missing
// mode is an error, never a silent default.
func UnmarshalLesson(data []byte) (Lesson, error) {
	var tag struct {
		Mode LessonMode `json:"mode"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode lesson mode: %w", err)
	}

	switch tag.Mode {
	case ModeStudy:
		var l StudyLesson
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode study lesson: %w", err)
		}
		return l, nil
	case ModePractice:
		var l PracticeLesson
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode practice lesson: %w", err)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown lesson mode %q", tag.Mode)
	}
}

// SynthesizeStudyLesson builds the lesson handed to the lesson-chat view when
// the wizard completes. Knowledge points, materials, review activities, and
// estimated time are copied from day index 0 of the weekly plan; the
// remaining days only contribute to the displayed week summary.
func SynthesizeStudyLesson(profile UserProfile, week []WeeklyPlanDay) (StudyLesson, error) {
	if len(week) == 0 {
		return StudyLesson{}, fmt.Errorf("weekly plan is empty")
	}
	first := week[0]

	var focus strings.Builder
	for i, day := range week {
		if i > 0 {
			focus.WriteString("\n")
		}
		fmt.Fprintf(&focus, "### Day %d: %s", day.DayNumber, day.Topic)
	}

	speech := fmt.Sprintf(
		"Welcome to your personalized English learning journey! Based on your %s level and interests in %s, we've created a custom plan for you.",
		profile.EnglishLevel, strings.Join(profile.Interests, ", "),
	)

	display := fmt.Sprintf(
		"# Your Personalized English Learning Plan\n\n## Based on Your Profile:\n- Level: %s\n- Interests: %s\n- Goals: %s\n- Daily study time: %d minutes\n\n## This Week's Focus:\n%s",
		profile.EnglishLevel,
		strings.Join(profile.Interests, ", "),
		strings.Join(profile.LearningGoals, ", "),
		profile.StudyTimePerDay,
		focus.String(),
	)

	return StudyLesson{
		Topic:            fmt.Sprintf("English Learning for %s Level", profile.EnglishLevel.Capitalized()),
		SpeechText:       speech,
		DisplayText:      display,
		KnowledgePoints:  first.KnowledgePoints,
		Materials:        first.Materials,
		ReviewActivities: first.ReviewActivities,
		EstimatedTime:    first.EstimatedTime,
	}, nil
}
