package core

import "context"

// Agent is the surface a delegating caller sees. The concrete implementation
// lives in the agent package; the interface lives here so the tool package
// can wrap any agent as a delegation tool without an import cycle.
//
// Execute never returns an error: every failure mode (tool error, transport
// exhaustion, iteration bound, rejected hallucination) is normalized to a
// plain string so that delegation composes uniformly; a delegate's failure
// is just more text for the delegator's reasoning.
type Agent interface {
	// Name returns the agent's display name, also used to derive the
	// synthetic tool name when the agent is wrapped for delegation.
	Name() string

	// Instruction returns the fixed system instruction. Delegation tools
	// embed it in their description so a calling model knows what the
	// delegate is for.
	Instruction() string

	// Execute runs the bounded reasoning loop for one task and returns the
	// terminal string outcome.
	Execute(ctx context.Context, input string) string
}
