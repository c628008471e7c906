package agent

import "strings"

// Detector classifies a plain-text model reply as a hallucinated structured
// response: the model echoed tool-calling grammar as prose instead of making
// a real structured call. Local inference models do this intermittently.
//
// The predicate is a replaceable policy, not a fixed algorithm. It is
// heuristic and model-specific, and false positives/negatives are an
// accepted tradeoff; swap it via WithDetector when a deployment's model
// misbehaves differently.
type Detector func(text string, toolNames []string) bool

// jsonCallOpeners are the object-opening shapes local models emit when they
// leak tool-call grammar into text.
var jsonCallOpeners = []string{
	`{"name"`,
	`{"tool"`,
	`{"function"`,
	`{"tool_calls"`,
	`{"parameters"`,
	`{ "name"`,
}

// DefaultDetector flags text that begins with a tool-call-shaped JSON opener,
// or that mentions a delegation tool name alongside an object-opening brace.
func DefaultDetector(text string, toolNames []string) bool {
	trimmed := strings.TrimSpace(text)
	for _, opener := range jsonCallOpeners {
		if strings.HasPrefix(trimmed, opener) {
			return true
		}
	}
	if !strings.Contains(trimmed, "{") {
		return false
	}
	for _, name := range toolNames {
		if strings.HasPrefix(name, "call_") && strings.Contains(trimmed, name) {
			return true
		}
	}
	return false
}
