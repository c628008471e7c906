package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunecrew/tunecrew/core"
	"github.com/tunecrew/tunecrew/model"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewModel(func(o *Options) {
		o.BaseURL = srv.URL
		o.Model = "llama3.2"
	})
}

func TestGenerate_TextResponse(t *testing.T) {
	var got chatRequest
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{
			Message:         chatMessage{Role: "assistant", Content: "hello"},
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       5,
		})
	})

	resp, err := m.Generate(context.Background(), model.Request{
		Instruction: "Be terse.",
		Messages:    []core.Message{core.NewUserMessage("hi")},
		Tools: []model.ToolDefinition{{
			Type:     "function",
			Function: model.FunctionDefinition{Name: "echo"},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Message.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	// Wire shape: streaming disabled, system instruction first, schemas carried.
	assert.False(t, got.Stream)
	assert.Equal(t, "llama3.2", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "Be terse.", got.Messages[0].Content)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "echo", got.Tools[0].Function.Name)
}

func TestGenerate_ToolCallResponse(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{
				Role: "assistant",
				ToolCalls: []toolCall{{
					Function: toolCallFunction{
						Name:      "search_track",
						Arguments: map[string]any{"query": "daft punk"},
					},
				}},
			},
			Done: true,
		})
	})

	resp, err := m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage("find daft punk")},
	})
	require.NoError(t, err)

	require.Len(t, resp.Message.ToolCalls, 1)
	call := resp.Message.ToolCalls[0]
	assert.Equal(t, "search_track", call.Name)
	assert.Equal(t, "daft punk", call.Arguments["query"])
	assert.NotEmpty(t, call.ID, "ids are synthesized for correlation")
	assert.Equal(t, "tool_calls", resp.FinishReason)
	assert.Empty(t, resp.Message.Content)
}

func TestGenerate_ServerError(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	_, err := m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage("hi")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestPing(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, m.Ping(context.Background()))
}

func TestGenerate_CarriesToolResultsBack(t *testing.T) {
	var got chatRequest
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "summarized"},
			Done:    true,
		})
	})

	_, err := m.Generate(context.Background(), model.Request{
		Messages: []core.Message{
			core.NewUserMessage("find it"),
			{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{ID: "c1", Name: "search_track", Arguments: map[string]any{"query": "x"}}}},
			core.NewToolMessage("c1", `{"tracks": []}`),
		},
	})
	require.NoError(t, err)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	require.Len(t, got.Messages[1].ToolCalls, 1)
	assert.Equal(t, "search_track", got.Messages[1].ToolCalls[0].Function.Name)
	assert.Equal(t, "tool", got.Messages[2].Role)
	assert.Equal(t, `{"tracks": []}`, got.Messages[2].Content)
}
