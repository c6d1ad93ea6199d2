// Package api implements assessment.Transport over HTTP, for running the
// terminal app against a remote engtutor server instead of a local model.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

const defaultTimeout = 5 * time.Minute

// Client posts JSON to the six assessment/lesson endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ assessment.Transport = (*Client)(nil)

// NewClient creates a Client for the server at baseURL
// (e.g. "http://localhost:8000"). Plan generation can take minutes, so the
// default timeout is generous; per-call deadlines come from the context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) InitialChat(ctx context.Context, messages []tutor.Message) (tutor.Message, error) {
	var out tutor.Message
	if err := c.post(ctx, "/api/assessment/initial-chat", messages, &out); err != nil {
		return tutor.Message{}, err
	}
	out.Role = tutor.RoleAssistant
	return out, nil
}

func (c *Client) AnalyzeProfile(ctx context.Context, messages []tutor.Message) (tutor.UserProfile, error) {
	var out tutor.UserProfile
	if err := c.post(ctx, "/api/assessment/analyze-profile", messages, &out); err != nil {
		return tutor.UserProfile{}, err
	}
	out.Clamp()
	return out, nil
}

func (c *Client) GenerateTotalPlan(ctx context.Context, profile tutor.UserProfile) (tutor.TotalPlan, error) {
	var out tutor.TotalPlan
	if err := c.post(ctx, "/api/assessment/generate-total-plan", profile, &out); err != nil {
		return tutor.TotalPlan{}, err
	}
	return out, nil
}

func (c *Client) GenerateWeeklyPlan(ctx context.Context, profile tutor.UserProfile, selectedDay int) ([]tutor.WeeklyPlanDay, error) {
	req := struct {
		tutor.UserProfile
		SelectedDay int `json:"selected_day"`
	}{profile, selectedDay}

	var out []tutor.WeeklyPlanDay
	if err := c.post(ctx, "/api/assessment/generate-weekly-plan", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLesson(ctx context.Context, req assessment.CreateLessonRequest) (assessment.CreateLessonResult, error) {
	var out struct {
		Lesson  json.RawMessage `json:"lesson"`
		History []tutor.Message `json:"conversation_history"`
	}
	if err := c.post(ctx, "/api/lesson/create", req, &out); err != nil {
		return assessment.CreateLessonResult{}, err
	}

	lesson, err := tutor.UnmarshalLesson(out.Lesson)
	if err != nil {
		return assessment.CreateLessonResult{}, fmt.Errorf("lesson-create response: %w", err)
	}
	return assessment.CreateLessonResult{Lesson: lesson, History: out.History}, nil
}

func (c *Client) LessonChat(ctx context.Context, req assessment.LessonChatRequest) ([]tutor.Message, error) {
	body := struct {
		Lesson    tutor.Lesson    `json:"lesson"`
		History   []tutor.Message `json:"conversation_history"`
		UserInput string          `json:"user_input"`
	}{req.Lesson, req.History, req.UserInput}

	// The chat endpoint answers with either a full updated history or a bare
	// assistant turn; normalize both to the full-history shape.
	var out struct {
		History     []tutor.Message `json:"conversation_history"`
		Content     string          `json:"content"`
		SpeechText  string          `json:"speechText"`
		DisplayText string          `json:"displayText"`
	}
	if err := c.post(ctx, "/api/lesson/chat", body, &out); err != nil {
		return nil, err
	}

	if len(out.History) > 0 {
		return out.History, nil
	}

	content := out.Content
	if content == "" {
		content = out.SpeechText
	}
	if content == "" {
		content = out.DisplayText
	}

	history := append([]tutor.Message(nil), req.History...)
	history = append(history,
		tutor.Message{Role: tutor.RoleUser, Content: req.UserInput},
		tutor.Message{
			Role:        tutor.RoleAssistant,
			Content:     content,
			SpeechText:  out.SpeechText,
			DisplayText: out.DisplayText,
		})
	return history, nil
}

// post sends a JSON body and decodes a JSON response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: %s: %s", path, resp.Status, errorDetail(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorDetail extracts the server's error message, falling back to the raw
// body.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}

	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
