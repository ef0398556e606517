//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	cases := []struct {
		name     string
		template string
		inputs   map[string]any
		want     string
	}{
		{
			name:     "simple",
			template: "Summarize {{topic}}",
			inputs:   map[string]any{"topic": "latency"},
			want:     "Summarize latency",
		},
		{
			name:     "whitespace inside braces",
			template: "Hello {{ name }}",
			inputs:   map[string]any{"name": "Ada"},
			want:     "Hello Ada",
		},
		{
			name:     "missing placeholder survives",
			template: "{{greeting}}, {{name}}",
			inputs:   map[string]any{"greeting": "Hi"},
			want:     "Hi, {{name}}",
		},
		{
			name:     "non-string value",
			template: "retry {{count}} times",
			inputs:   map[string]any{"count": 3},
			want:     "retry 3 times",
		},
		{
			name:     "no placeholders",
			template: "static prompt",
			inputs:   map[string]any{"unused": "x"},
			want:     "static prompt",
		},
		{
			name:     "nil inputs",
			template: "keep {{this}}",
			inputs:   nil,
			want:     "keep {{this}}",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Substitute(tc.template, tc.inputs))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	names := Placeholders("Compare {{a}} with {{ b }} and {{a}}")
	require.Equal(t, []string{"a", "b"}, names)
	require.Empty(t, Placeholders("nothing here"))
}
