// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities with schema-validated arguments, consistent
// error handling and descriptions that guide model selection. It also holds
// the delegation primitive that exposes one agent as a tool of another.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for extending agent capabilities.
//
// Tools are registered with an agent's Registry to enable function calling.
// A tool is created once at setup time, is immutable thereafter and is owned
// by exactly one agent's registry; when two agents need the same capability,
// two instances are constructed rather than shared.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Define a proper JSON schema for parameters
//   - Return errors rather than panic; the Registry captures both
type Tool interface {
	// Name returns the unique identifier for this tool within a registry.
	Name() string

	// Description returns human-readable text provided to the model to
	// help it decide when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with decoded named arguments and returns the
	// string result fed back into the owning agent's reasoning context.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// ToolError represents errors that occur during tool execution. The agent
// boundary flattens these into prose, but the structured form is preserved
// internally so hosts can log and alert on error kind.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`              // VALIDATION_ERROR, EXECUTION_ERROR, NOT_FOUND
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
