// Package agent contains the bounded tool-calling execution loop at the
// heart of TuneCrew. An Agent owns a system instruction, a conversation
// memory, a tool registry and a model transport; Execute turns user input
// into a final natural-language answer via zero or more tool invocations,
// including delegation to other agents wrapped as tools.
//
// Design principles:
//   - Every terminal outcome is a plain string, never a raised fault, so
//     that agent-as-tool delegation composes uniformly
//   - Both the outer iteration count and the per-iteration retry budget are
//     bounded, which guarantees termination even under delegation cycles
//   - Memory is append-only with a single logical writer: the agent's own
//     Execute call stack, including re-entries through a delegation cycle
package agent
