package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}
}

func TestFunctionTool_Success(t *testing.T) {
	sum := NewFunctionTool("sum", "Add numbers", numberSchema(),
		func(_ context.Context, args map[string]any) (string, error) {
			return "5", nil
		})

	result, err := sum.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, "5", result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	sum := NewFunctionTool("sum", "Add numbers", numberSchema(),
		func(_ context.Context, _ map[string]any) (string, error) {
			t.Fatal("fn must not run on validation failure")
			return "", nil
		})

	_, err := sum.Call(context.Background(), map[string]any{"a": 2.0})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
	assert.Equal(t, "sum", toolErr.Tool)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	failing := NewFunctionTool("boom", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (string, error) {
			return "", errors.New("kaput")
		})

	_, err := failing.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Contains(t, toolErr.Message, "kaput")
}

func TestFunctionTool_ForwardsToolError(t *testing.T) {
	custom := NewToolError("boom", "rate limited", "RATE_LIMIT")
	failing := NewFunctionTool("boom", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (string, error) {
			return "", custom
		})

	_, err := failing.Call(context.Background(), map[string]any{})
	assert.Same(t, custom, err)
}

type echoArgs struct {
	Text  string `json:"text" description:"Text to echo"`
	Times *int   `json:"times" description:"Optional repeat count"`
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	echo := NewFunctionToolFromStruct("echo", "Echo text", echoArgs{},
		func(_ context.Context, args map[string]any) (string, error) {
			return args["text"].(string), nil
		})

	params := echo.Parameters()
	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "text")
	assert.Contains(t, props, "times")
	assert.Equal(t, []string{"text"}, params["required"])

	result, err := echo.Call(context.Background(), map[string]any{"text": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", result)
}
