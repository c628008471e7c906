package model

import (
	"context"

	"github.com/tunecrew/tunecrew/core"
)

// ToolDefinition declaratively exposes a callable function to the model,
// following the chat-completions function-calling wire shape shared by
// Ollama and OpenAI.
type ToolDefinition struct {
	Type     string             `json:"type"` // always "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a minimal JSON Schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by an agent loop
// iteration: the fixed system instruction, the full ordered memory snapshot
// and the tool schemas of the agent's registry. Streaming is intentionally
// absent; the loop always awaits a complete turn.
type Request struct {
	Instruction string           `json:"instruction"`
	Messages    []core.Message   `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token accounting for a completed turn.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is one complete model turn: either assistant text or a batch of
// requested tool calls, never both populated meaningfully at once.
type Response struct {
	Message      core.Message `json:"message"`
	FinishReason string       `json:"finish_reason,omitempty"`
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "ollama", "openai", "anthropic", "mock"
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the agent loop to drive
// generation. Generate blocks for the full turn; transport failures surface
// as errors and are retried by the caller's bounded retry policy.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}
