package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
	d string //nolint:unused // unexported fields are skipped
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	assert.NotContains(t, props, "d")

	a, _ := props["a"].(map[string]any)
	assert.Equal(t, "string", a["type"])
	assert.Equal(t, "Field A", a["description"])

	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// []any mirrors a JSON round-tripped schema shape
		"required": []any{"x"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"x": 5}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "x", vErr.Field)

	err = ValidateParameters(map[string]any{"x": "not-int"}, schema)
	require.Error(t, err)
	vErr, ok = err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Message, "expected type integer")

	// JSON numbers arrive as float64; whole values pass as integers.
	assert.NoError(t, ValidateParameters(map[string]any{"x": 7.0}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"x": 7.5}, schema))
}

func TestValidateParameters_ToleratesExtraFields(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"surprise": true}, schema))
}
