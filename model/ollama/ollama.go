// Package ollama provides a model.Model implementation backed by the Ollama
// /api/chat endpoint (non-streaming, with function/tool calling). It is the
// reference transport for local inference.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tunecrew/tunecrew/core"
	"github.com/tunecrew/tunecrew/model"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
	defaultTimeout = 120 * time.Second
)

// Options configure the Ollama model adapter.
type Options struct {
	BaseURL     string
	Model       string
	Temperature *float64
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// Model wraps the Ollama chat API behind the generic model.Model interface.
type Model struct {
	opts   Options
	client *http.Client
}

// NewModel creates a new Ollama model adapter.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		BaseURL: defaultBaseURL,
		Model:   defaultModel,
		Timeout: defaultTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Model{opts: opts, client: client}
}

// chatRequest matches the Ollama /api/chat request body.
type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Tools    []model.ToolDefinition `json:"tools,omitempty"`
	Options  map[string]any         `json:"options,omitempty"`
}

type chatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type toolCall struct {
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// chatResponse matches the Ollama /api/chat non-streaming response body.
type chatResponse struct {
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

// Generate implements model.Model. The system instruction is prepended as a
// system message, mirroring how the agent loop builds its request context.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	body := chatRequest{
		Model:    m.opts.Model,
		Messages: buildMessages(req),
		Stream:   false,
		Tools:    req.Tools,
	}
	if m.opts.Temperature != nil {
		body.Options = map[string]any{"temperature": *m.opts.Temperature}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.opts.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	return toResponse(out), nil
}

// buildMessages converts the normalized request into Ollama chat messages.
func buildMessages(req model.Request) []chatMessage {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.Instruction != "" {
		messages = append(messages, chatMessage{Role: string(core.RoleSystem), Content: req.Instruction})
	}
	for _, msg := range req.Messages {
		cm := chatMessage{Role: string(msg.Role), Content: msg.Content}
		for _, tc := range msg.ToolCalls {
			cm.ToolCalls = append(cm.ToolCalls, toolCall{
				Function: toolCallFunction{Name: tc.Name, Arguments: tc.Arguments},
			})
		}
		messages = append(messages, cm)
	}
	return messages
}

// toResponse normalizes an Ollama reply. Ollama does not assign tool call
// ids, so stable ids are synthesized for downstream correlation.
func toResponse(out chatResponse) *model.Response {
	msg := core.Message{
		Role:    core.RoleAssistant,
		Content: out.Message.Content,
	}
	for _, tc := range out.Message.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
			ID:        uuid.NewString(),
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	finish := "stop"
	if len(msg.ToolCalls) > 0 {
		finish = "tool_calls"
		msg.Content = "" // some models emit filler text alongside tool calls
	}

	resp := &model.Response{Message: msg, FinishReason: finish}
	if out.PromptEvalCount > 0 || out.EvalCount > 0 {
		resp.Usage = &model.TokenUsage{
			PromptTokens:     out.PromptEvalCount,
			CompletionTokens: out.EvalCount,
			TotalTokens:      out.PromptEvalCount + out.EvalCount,
		}
	}
	return resp
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "ollama", SupportsTools: true}
}

// Ping verifies the endpoint is reachable. Used by the doctor command.
func (m *Model) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.opts.BaseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}
