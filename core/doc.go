// Package core provides the foundational domain types shared across TuneCrew.
// It defines the conversation message model (roles, tool calls) and the
// minimal Agent interface that the tool package needs to wrap an agent as a
// delegation target without importing the agent package itself.
//
// The package intentionally carries no behavior beyond these types so that
// agent, tool, model and memory can all depend on it without cycles.
package core
