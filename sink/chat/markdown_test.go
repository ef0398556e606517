//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripMarkdown(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{name: "plain text unchanged", source: "just words", want: "just words"},
		{name: "emphasis", source: "**bold** and *italic*", want: "bold and italic"},
		{name: "inline code", source: "run `go vet` first", want: "run go vet first"},
		{name: "link keeps label", source: "see [the docs](https://example.com)", want: "see the docs"},
		{name: "heading", source: "# Title\n\nbody", want: "Title\nbody"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StripMarkdown(tc.source))
		})
	}
}

func TestStripMarkdownList(t *testing.T) {
	got := StripMarkdown("- first\n- second")
	require.Contains(t, got, "first")
	require.Contains(t, got, "second")
	require.NotContains(t, got, "-")
}

func TestStripMarkdownCodeBlock(t *testing.T) {
	got := StripMarkdown("```go\nfmt.Println(1)\n```")
	require.Contains(t, got, "fmt.Println(1)")
	require.NotContains(t, got, "```")
}
