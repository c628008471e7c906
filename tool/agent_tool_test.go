package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAgent satisfies core.Agent without pulling in the agent package.
type stubAgent struct {
	name        string
	instruction string
	lastTask    string
	answer      string
}

func (s *stubAgent) Name() string        { return s.name }
func (s *stubAgent) Instruction() string { return s.instruction }
func (s *stubAgent) Execute(_ context.Context, input string) string {
	s.lastTask = input
	return s.answer
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "spotify_search_agent", NormalizeName("Spotify Search Agent"))
	assert.Equal(t, "playlist_agent", NormalizeName("Playlist-Agent"))
	assert.Equal(t, "dj_3000", NormalizeName("DJ 3000!"))
}

func TestAgentTool_WrapsAgent(t *testing.T) {
	delegate := &stubAgent{
		name:        "Search Agent",
		instruction: "You are a search specialist.",
		answer:      "found it",
	}
	at := NewAgentTool(delegate)

	assert.Equal(t, "call_search_agent", at.Name())
	assert.Contains(t, at.Description(), "Search Agent")
	assert.Contains(t, at.Description(), "You are a search specialist.")

	params := at.Parameters()
	assert.Equal(t, []string{"task"}, params["required"])

	result, err := at.Call(context.Background(), map[string]any{"task": "find the track"})
	require.NoError(t, err)
	assert.Equal(t, "found it", result)
	assert.Equal(t, "find the track", delegate.lastTask)
}

func TestAgentTool_RequiresTask(t *testing.T) {
	at := NewAgentTool(&stubAgent{name: "Helper"})

	_, err := at.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)

	_, err = at.Call(context.Background(), map[string]any{"task": 42})
	assert.Error(t, err)
}
