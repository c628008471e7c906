package core

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem marks instructions injected by the framework, including
	// corrective entries appended after a hallucinated reply.
	RoleSystem Role = "system"
	// RoleUser marks input originating from the end user (or, for a
	// delegated agent, the task text supplied by the delegating agent).
	RoleUser Role = "user"
	// RoleAssistant marks model output, both final answers and the
	// tool-call-bearing turns preceding tool dispatch.
	RoleAssistant Role = "assistant"
	// RoleTool marks the stringified result of a dispatched tool call.
	RoleTool Role = "tool"
)

// ToolCall is a single function invocation requested by the model.
// Arguments arrive already decoded into a generic map; provider adapters are
// responsible for parsing whatever wire encoding their API uses.
type ToolCall struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Message is one entry in an agent's conversation memory. Exactly one of
// Content or ToolCalls is meaningful for assistant messages: a turn either
// carries final/intermediate text or a batch of requested tool calls.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // set on RoleTool entries, matches the originating call
}

// NewUserMessage builds a user-role message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage builds an assistant-role text message.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// NewSystemMessage builds a system-role message.
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// NewToolMessage builds a tool-role result message correlated to callID.
func NewToolMessage(callID, result string) Message {
	return Message{Role: RoleTool, Content: result, ToolCallID: callID}
}
