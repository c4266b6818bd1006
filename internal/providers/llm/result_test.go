package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pointSchema = &Schema{
	Name: "test_point",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number"},
		},
		"required": []string{"x", "y"},
	},
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func TestCall_NilProvider(t *testing.T) {
	res := Call(context.Background(), nil, "hi")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindUnavailable, res.Err.Kind)
}

func TestCall_ProviderError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	res := Call(context.Background(), mock, "hi")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindUnavailable, res.Err.Kind)
	assert.Equal(t, []string{"hi"}, mock.Prompts)
}

func TestCall_EmptyText(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "  \n"})
	res := Call(context.Background(), mock, "hi")
	require.NotNil(t, res.Err)
	assert.Equal(t, KindEmpty, res.Err.Kind)
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"x\":1}\n```":           `{"x":1}`,
		"```\n{\"x\":1}\n```":               `{"x":1}`,
		"Here you go:\n{\"x\":1}\nThanks!":  `{"x":1}`,
		`{"x":1}`:                           `{"x":1}`,
		"no json at all":                    "no json at all",
		"```json\n{\"a\":{\"b\":2}}\n```\n": `{"a":{"b":2}}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), in)
	}
}

func TestDecode_Success(t *testing.T) {
	p, gerr := Decode[point](Result{Text: "```json\n{\"x\": 1.5, \"y\": 2}\n```"}, pointSchema)
	require.Nil(t, gerr)
	assert.Equal(t, point{X: 1.5, Y: 2}, p)
}

func TestDecode_PassesThroughResultError(t *testing.T) {
	in := &GenerationError{Kind: KindUnavailable}
	_, gerr := Decode[point](Result{Err: in}, pointSchema)
	assert.Same(t, in, gerr)
}

func TestDecode_Malformed(t *testing.T) {
	_, gerr := Decode[point](Result{Text: "{x: 1,"}, pointSchema)
	require.NotNil(t, gerr)
	assert.Equal(t, KindMalformed, gerr.Kind)
}

func TestDecode_SchemaViolation(t *testing.T) {
	_, gerr := Decode[point](Result{Text: `{"x": 1}`}, pointSchema)
	require.NotNil(t, gerr)
	assert.Equal(t, KindInvalid, gerr.Kind)
}
