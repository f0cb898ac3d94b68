// Package enrich generates supplementary learning material for
// vocabulary words (example sentences, mnemonics, usage notes) through
// an LLM provider abstraction. The app works fully without it; an
// enrichment is extra color, never a dependency of the learning cycle.
package enrich

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over LLM backends. Consumers call
// Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured
	// response. When the request's Schema is set, the provider uses
	// its native structured output mechanism and the response Content
	// is the validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is
	// configured to use.
	ModelID() string
}

// Request describes what to send to the LLM. Enrichment is
// single-turn: one system instruction, one user prompt, one reply.
type Request struct {
	// System sets the LLM's role and constraints.
	System string

	// Prompt is the user message describing the word to enrich.
	Prompt string

	// Schema is the JSON Schema the response must conform to. When
	// nil the response Content is raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero when unset.
	Temperature float64
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema
	// name for OpenAI). Kebab-case, e.g. "word-enrichment".
	Name string

	// Description guides the LLM's generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output, validated against the request
	// Schema when one was provided.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
