package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/tunecrew/tunecrew/core"
)

// AgentTool is the delegation primitive: it wraps an agent so that another
// agent can hand off a task to it through an ordinary tool call. The wrapped
// agent is indistinguishable, from the caller's perspective, from any other
// tool: its Execute never returns an error, so a delegate's failure arrives
// as plain text in the delegator's reasoning context.
//
// Delegation graphs may contain cycles. Each Execute is independently bounded
// by its own iteration cap, so a runaway cycle degrades to repeated bounded
// failures rather than unbounded recursion.
type AgentTool struct {
	agent core.Agent
	name  string
}

// NewAgentTool wraps an agent as a tool named call_<normalized agent name>.
func NewAgentTool(agent core.Agent) *AgentTool {
	return &AgentTool{
		agent: agent,
		name:  "call_" + NormalizeName(agent.Name()),
	}
}

// NormalizeName lowercases a display name and maps it to a function-safe
// identifier ("Search Agent" -> "search_agent").
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Name returns the synthetic delegation tool name.
func (t *AgentTool) Name() string { return t.name }

// Description embeds the wrapped agent's instruction so the calling model
// knows what the delegate is for.
func (t *AgentTool) Description() string {
	return fmt.Sprintf("Delegate a task to the %s. %s", t.agent.Name(), t.agent.Instruction())
}

// Parameters declares the single required free-text task argument.
func (t *AgentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"task": map[string]any{
				"type":        "string",
				"description": "The task or question to ask the agent",
			},
		},
		"required": []string{"task"},
	}
}

// Call runs the wrapped agent's Execute synchronously and returns its final
// answer.
func (t *AgentTool) Call(ctx context.Context, args map[string]any) (string, error) {
	raw, ok := args["task"]
	if !ok {
		return "", NewToolError(t.name, "missing required field 'task'", "VALIDATION_ERROR")
	}
	task, ok := raw.(string)
	if !ok || task == "" {
		return "", NewToolError(t.name, "field 'task' must be a non-empty string", "VALIDATION_ERROR")
	}
	return t.agent.Execute(ctx, task), nil
}
