//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

func TestDefaultPromptsCoverKnownFormats(t *testing.T) {
	r := NewRegistry()
	for _, format := range []output.Format{
		output.FormatPPT,
		output.FormatDocument,
		output.FormatDataAnalysis,
		output.FormatTask,
		output.FormatChat,
		output.FormatJSON,
		output.FormatText,
	} {
		prompt := r.SystemPrompt(format)
		require.NotEmpty(t, prompt, "format %s has no prompt", format)
		require.Contains(t, prompt, "JSON")
	}
}

func TestSystemPromptNormalizesAliases(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, r.SystemPrompt(output.FormatPPT), r.SystemPrompt("ppt_generation"))
}

func TestSystemPromptUnknownFormatFallsBack(t *testing.T) {
	r := NewRegistry()
	prompt := r.SystemPrompt("mermaid")
	require.Contains(t, prompt, "well-structured JSON")
}

func TestWithPromptOverride(t *testing.T) {
	r := NewRegistry(WithPrompt(output.FormatChat, "custom chat prompt"))
	require.Equal(t, "custom chat prompt", r.SystemPrompt(output.FormatChat))
	// Other formats keep their defaults.
	require.NotEqual(t, "custom chat prompt", r.SystemPrompt(output.FormatTask))
}
