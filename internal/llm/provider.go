package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over chat-completion backends. The tutoring
// services build a Request (system prompt + conversation) and receive either
// free text or schema-validated JSON.
type Provider interface {
	// Generate sends the request and returns the model's reply. When the
	// request carries a Schema, Content is JSON validated against it;
	// otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured for.
	ModelID() string
}

// Request describes one chat-completion call.
type Request struct {
	// System sets the tutor's role and constraints for this call.
	System string

	// Messages is the conversation so far, oldest first. Assessment and
	// lesson chats are genuinely multi-turn; plan generation sends a
	// single user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the reply against it.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Conversational calls use a
	// higher value than plan generation.
	Temperature float64
}

// Message is a single conversation turn as seen by the model.
type Message struct {
	Role    Role
	Content string
}

// Role is the turn author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "weekly-plan").
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is validated JSON when the request had a Schema, raw text
	// otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
