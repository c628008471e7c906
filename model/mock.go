package model

import (
	"context"
	"sync"

	"github.com/tunecrew/tunecrew/core"
)

// MockModel is a lightweight in-memory Model useful for tests and examples.
// It replays a scripted sequence of turns; once the script is exhausted the
// last step repeats, which makes "always fails" and "always requests a tool
// call" stubs trivial to express.
type MockModel struct {
	mu       sync.Mutex
	info     Info
	steps    []mockStep
	requests []Request
}

type mockStep struct {
	resp Response
	err  error
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// AddTextResponse scripts a plain assistant text turn.
func (m *MockModel) AddTextResponse(text string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{resp: Response{
		Message:      core.NewAssistantMessage(text),
		FinishReason: "stop",
	}})
	return m
}

// AddToolCallResponse scripts an assistant turn requesting the given calls.
func (m *MockModel) AddToolCallResponse(calls ...core.ToolCall) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{resp: Response{
		Message:      core.Message{Role: core.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
	}})
	return m
}

// AddError scripts a transport failure.
func (m *MockModel) AddError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{err: err})
	return m
}

// Generate implements Model by replaying the script. It records every request
// so tests can assert on what the loop sent.
func (m *MockModel) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.steps) == 0 {
		return &Response{Message: core.NewAssistantMessage("ok"), FinishReason: "stop"}, nil
	}
	idx := len(m.requests) - 1
	if idx >= len(m.steps) {
		idx = len(m.steps) - 1
	}
	step := m.steps[idx]
	if step.err != nil {
		return nil, step.err
	}
	resp := step.resp
	return &resp, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

// Calls returns the number of Generate invocations observed so far.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests in call order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
