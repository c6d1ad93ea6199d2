package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slggamerTrue/languageLearning/internal/llm"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// Generation limits per operation. Plan generation needs room for seven full
// days of material; chat turns are short.
const (
	chatMaxTokens       = 1024
	profileMaxTokens    = 2048
	totalPlanMaxTokens  = 4096
	weeklyPlanMaxTokens = 8192
	lessonMaxTokens     = 4096

	chatTemperature = 0.7
	planTemperature = 0.3
)

// Service is the local Transport: it serves the six operations directly from
// an llm.Provider instead of calling a remote API server.
type Service struct {
	provider llm.Provider
}

// NewService creates a Service on the given provider.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

var _ Transport = (*Service)(nil)

// turn is the {speechText, displayText} shape shared by the chat and lesson
// schemas.
type turn struct {
	SpeechText  []string `json:"speechText"`
	DisplayText string   `json:"displayText"`
}

// assistantMessage folds a structured turn into a single Message. The display
// text is appended to the canonical content so the completion marker, when
// present, is detectable on Content alone.
func (t turn) assistantMessage() tutor.Message {
	speech := strings.Join(t.SpeechText, " ")
	content := speech
	if t.DisplayText != "" {
		if content != "" {
			content += "\n"
		}
		content += t.DisplayText
	}
	return tutor.Message{
		Role:        tutor.RoleAssistant,
		Content:     content,
		SpeechText:  speech,
		DisplayText: t.DisplayText,
	}
}

func (s *Service) InitialChat(ctx context.Context, messages []tutor.Message) (tutor.Message, error) {
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "assessment-chat"), llm.Request{
		System: assessmentChatPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: flattenConversation(messages)},
		},
		Schema:      assessmentTurnSchema,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return tutor.Message{}, fmt.Errorf("assessment chat: %w", err)
	}

	var t turn
	if err := json.Unmarshal(resp.Content, &t); err != nil {
		return tutor.Message{}, fmt.Errorf("decode assessment turn: %w", err)
	}
	return t.assistantMessage(), nil
}

func (s *Service) AnalyzeProfile(ctx context.Context, messages []tutor.Message) (tutor.UserProfile, error) {
	// The marker has done its job by now; keep it out of the analysis input.
	cleaned := make([]tutor.Message, len(messages))
	for i, m := range messages {
		m.Content = stripMarker(m.Content)
		m.DisplayText = stripMarker(m.DisplayText)
		cleaned[i] = m
	}

	user := "Please analyze the following conversation and generate a learner profile:\n\n" +
		flattenConversation(cleaned)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "profile-analysis"), llm.Request{
		System: profileAnalysisPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      profileSchema,
		MaxTokens:   profileMaxTokens,
		Temperature: planTemperature,
	})
	if err != nil {
		return tutor.UserProfile{}, fmt.Errorf("profile analysis: %w", err)
	}

	var profile tutor.UserProfile
	if err := json.Unmarshal(resp.Content, &profile); err != nil {
		return tutor.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	profile.Clamp()
	return profile, nil
}

func (s *Service) GenerateTotalPlan(ctx context.Context, profile tutor.UserProfile) (tutor.TotalPlan, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return tutor.TotalPlan{}, fmt.Errorf("encode profile: %w", err)
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "total-plan"), llm.Request{
		System: totalPlanPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Learner profile:\n" + string(payload)},
		},
		Schema:      totalPlanSchema,
		MaxTokens:   totalPlanMaxTokens,
		Temperature: planTemperature,
	})
	if err != nil {
		return tutor.TotalPlan{}, fmt.Errorf("total plan: %w", err)
	}

	var plan tutor.TotalPlan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return tutor.TotalPlan{}, fmt.Errorf("decode total plan: %w", err)
	}
	if len(plan.Topics) == 0 {
		return tutor.TotalPlan{}, fmt.Errorf("total plan has no topics")
	}
	return plan, nil
}

func (s *Service) GenerateWeeklyPlan(ctx context.Context, profile tutor.UserProfile, selectedDay int) ([]tutor.WeeklyPlanDay, error) {
	payload, err := json.Marshal(struct {
		tutor.UserProfile
		SelectedDay int `json:"selected_day"`
	}{profile, selectedDay})
	if err != nil {
		return nil, fmt.Errorf("encode weekly plan request: %w", err)
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "weekly-plan"), llm.Request{
		System: weeklyPlanPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Learner profile and selected topic day:\n" + string(payload)},
		},
		Schema:      weeklyPlanSchema,
		MaxTokens:   weeklyPlanMaxTokens,
		Temperature: planTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("weekly plan: %w", err)
	}

	var plan struct {
		Days []tutor.WeeklyPlanDay `json:"days"`
	}
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return nil, fmt.Errorf("decode weekly plan: %w", err)
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("weekly plan has no days")
	}
	return plan.Days, nil
}

func (s *Service) CreateLesson(ctx context.Context, req CreateLessonRequest) (CreateLessonResult, error) {
	var system string
	switch req.Mode {
	case tutor.ModeStudy:
		system = studyLessonPrompt
	case tutor.ModePractice:
		if req.Scene == nil {
			return CreateLessonResult{}, fmt.Errorf("practice lesson requires a scene")
		}
		system = practiceLessonPrompt
	default:
		return CreateLessonResult{}, fmt.Errorf("unknown lesson mode %q", req.Mode)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return CreateLessonResult{}, fmt.Errorf("encode lesson request: %w", err)
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "lesson-create"), llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Lesson information:\n" + string(payload)},
		},
		Schema:      lessonTurnSchema,
		MaxTokens:   lessonMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return CreateLessonResult{}, fmt.Errorf("create lesson: %w", err)
	}

	var t turn
	if err := json.Unmarshal(resp.Content, &t); err != nil {
		return CreateLessonResult{}, fmt.Errorf("decode lesson opening: %w", err)
	}
	opening := t.assistantMessage()

	var lesson tutor.Lesson
	switch req.Mode {
	case tutor.ModeStudy:
		study := tutor.StudyLesson{
			Topic:       req.Topic,
			SpeechText:  opening.SpeechText,
			DisplayText: opening.DisplayText,
		}
		if day := req.AssessmentDay; day != nil {
			if study.Topic == "" {
				study.Topic = day.Topic
			}
			study.DayNumber = day.DayNumber
			study.KnowledgePoints = day.KnowledgePoints
			study.Materials = day.Materials
			study.ReviewActivities = day.ReviewActivities
			study.EstimatedTime = day.EstimatedTime
		}
		lesson = study
	case tutor.ModePractice:
		lesson = tutor.PracticeLesson{
			Topic:       req.Topic,
			SpeechText:  opening.SpeechText,
			DisplayText: opening.DisplayText,
			Scene:       *req.Scene,
		}
	}

	return CreateLessonResult{
		Lesson:  lesson,
		History: []tutor.Message{opening},
	}, nil
}

func (s *Service) LessonChat(ctx context.Context, req LessonChatRequest) ([]tutor.Message, error) {
	if req.Lesson == nil {
		return nil, fmt.Errorf("lesson chat requires a lesson")
	}

	lessonJSON, err := json.Marshal(req.Lesson)
	if err != nil {
		return nil, fmt.Errorf("encode lesson: %w", err)
	}

	var system string
	switch req.Lesson.Mode() {
	case tutor.ModeStudy:
		system = fmt.Sprintf(lessonChatStudyPrompt, lessonJSON)
	case tutor.ModePractice:
		system = fmt.Sprintf(lessonChatPracticePrompt, lessonJSON)
	default:
		return nil, fmt.Errorf("unknown lesson mode %q", req.Lesson.Mode())
	}

	history := append([]tutor.Message(nil), req.History...)
	history = append(history, tutor.Message{Role: tutor.RoleUser, Content: req.UserInput})

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "lesson-chat"), llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: flattenConversation(history)},
		},
		Schema:      lessonTurnSchema,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("lesson chat: %w", err)
	}

	var t turn
	if err := json.Unmarshal(resp.Content, &t); err != nil {
		return nil, fmt.Errorf("decode lesson turn: %w", err)
	}
	return append(history, t.assistantMessage()), nil
}
