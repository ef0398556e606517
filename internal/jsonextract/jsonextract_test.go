//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package jsonextract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_DirectParse(t *testing.T) {
	value, err := Extract(`{"title":"Penguins","sections":[]}`)
	require.NoError(t, err)
	m, ok := value.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Penguins", m["title"])
}

func TestExtract_NonObjectValues(t *testing.T) {
	value, err := Extract(`[1, 2, 3]`)
	require.NoError(t, err)
	require.Len(t, value, 3)

	value, err = Extract(`42`)
	require.NoError(t, err)
	require.Equal(t, float64(42), value)
}

func TestExtract_SurroundingProse(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "leading explanation",
			input: `Here is the JSON you asked for: {"a":1}`,
		},
		{
			name:  "trailing explanation",
			input: `{"a":1} I hope this helps!`,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"a\":1}\n```",
		},
		{
			name:  "prose on both sides",
			input: "Sure thing.\n{\"a\":1}\nLet me know if you need more.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Extract(tt.input)
			require.NoError(t, err)
			m, ok := value.(map[string]any)
			require.True(t, ok)
			require.Equal(t, float64(1), m["a"])
		})
	}
}

func TestExtract_ExtraTrailingBrace(t *testing.T) {
	value, err := Extract(`{"a":{"b":2}}}`)
	require.NoError(t, err)
	m, ok := value.(map[string]any)
	require.True(t, ok)
	inner, ok := m["a"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(2), inner["b"])
}

func TestExtract_BracesInsideStrings(t *testing.T) {
	value, err := Extract(`noise {"text":"a } in a string","n":1}}`)
	require.NoError(t, err)
	m, ok := value.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "a } in a string", m["text"])
}

func TestExtract_NoJSON(t *testing.T) {
	_, err := Extract("I could not produce any structured output, sorry.")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no JSON object")
}

func TestExtract_UnrecoverableInput(t *testing.T) {
	_, err := Extract(`{"a": unterminated`)
	require.Error(t, err)

	_, err = Extract("")
	require.Error(t, err)
}
