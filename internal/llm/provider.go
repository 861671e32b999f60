package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates structured JSON from a language model.
type Provider interface {
	// Generate runs one completion. With req.Schema set, the returned
	// Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System string

	// Messages holds the conversation. Question generation sends a single
	// user turn.
	Messages []Message

	// Schema, when set, is passed to the provider's structured output
	// mode and checked on the way back. Without it Content is the raw
	// model text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// check rejects requests that no provider can serve.
func (r Request) check() error {
	if len(r.Messages) == 0 {
		return &ErrInvalidRequest{Err: errors.New("request has no messages")}
	}
	// Compiled schemas are cached by name.
	if r.Schema != nil && r.Schema.Name == "" {
		return &ErrInvalidRequest{Err: errors.New("schema has no name")}
	}
	return nil
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON a provider must return.
type Schema struct {
	// Name is a kebab-case identifier such as "interview-questions". It is
	// sent as the OpenAI schema name and keys the compiled-schema cache.
	Name string

	// Description is shown to the model alongside the schema.
	Description string

	// Definition is a JSON Schema document. String properties with
	// minLength must also hold something other than whitespace.
	Definition map[string]any
}

// Response is a completed generation.
type Response struct {
	// Content is the validated JSON when a Schema was given, otherwise the
	// model text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the call, which can differ
	// from the configured alias.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
