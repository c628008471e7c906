package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDetector(t *testing.T) {
	toolNames := []string{"search_track", "call_spotify_search_agent"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain answer", "The track is by Daft Punk.", false},
		{"json opener name", `{"name": "search_track", "parameters": {}}`, true},
		{"json opener tool_calls", `{"tool_calls": [{"name": "x"}]}`, true},
		{"json opener with leading whitespace", `  {"function": "search_track"}`, true},
		{"delegation name with brace", `I will run call_spotify_search_agent({"task": "find it"})`, true},
		{"delegation name without brace", "Let me ask call_spotify_search_agent about that.", false},
		{"plain tool name with brace", `search_track takes a {query} argument`, false},
		{"empty", "", false},
		{"legit json answer", `{"answer": 42}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultDetector(tt.text, toolNames))
		})
	}
}
