// Package model defines the vendor-neutral inference transport consumed by
// the agent execution loop, plus a scripted mock implementation for tests.
// Concrete adapters live in the ollama, openai and anthropic subpackages.
package model
