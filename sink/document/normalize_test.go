//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

func TestNormalizeDeck(t *testing.T) {
	content := Normalize(output.FormatPPT, map[string]any{
		"title": "Q3 Review",
		"slides": []any{
			map[string]any{"type": "title", "title": "Q3 Review", "subtitle": "Infra"},
			map[string]any{"title": "Wins", "bullets": []any{"p99 down", "cost down"}},
		},
	})
	require.Equal(t, "Q3 Review", content.Title)
	require.Len(t, content.Slides, 2)
	require.Equal(t, "title", content.Slides[0].Type)
	// A slide without a type defaults to content.
	require.Equal(t, "content", content.Slides[1].Type)
	require.Equal(t, []string{"p99 down", "cost down"}, content.Slides[1].Bullets)
}

func TestNormalizeDeckNonObject(t *testing.T) {
	content := Normalize(output.FormatPPT, "just a sentence from the model")
	require.Equal(t, "Untitled Presentation", content.Title)
	require.Len(t, content.Slides, 1)
	require.Equal(t, []string{"just a sentence from the model"}, content.Slides[0].Bullets)
}

func TestNormalizeDeckBulletsAsString(t *testing.T) {
	content := Normalize(output.FormatPPT, map[string]any{
		"slides": []any{
			map[string]any{"title": "Wins", "bullets": "first, second, third"},
		},
	})
	require.Equal(t, []string{"first", "second", "third"}, content.Slides[0].Bullets)

	content = Normalize(output.FormatPPT, map[string]any{
		"slides": []any{
			map[string]any{"title": "Wins", "bullets": "line one\nline two"},
		},
	})
	require.Equal(t, []string{"line one", "line two"}, content.Slides[0].Bullets)
}

func TestNormalizeDeckBulletsAsEncodedJSON(t *testing.T) {
	content := Normalize(output.FormatPPT, map[string]any{
		"slides": []any{
			map[string]any{"bullets": `["a", "b"]`},
		},
	})
	require.Equal(t, []string{"a", "b"}, content.Slides[0].Bullets)
}

func TestNormalizeDocument(t *testing.T) {
	content := Normalize(output.FormatDocument, map[string]any{
		"title": "Postmortem",
		"sections": []any{
			map[string]any{"heading": "Impact", "content": "12 minutes of downtime"},
			map[string]any{"title": "Timeline", "content": "09:00 alert fired"},
		},
	})
	require.Equal(t, "Postmortem", content.Title)
	require.Len(t, content.Sections, 2)
	require.Equal(t, "Impact", content.Sections[0].Heading)
	// "title" is accepted as a heading fallback.
	require.Equal(t, "Timeline", content.Sections[1].Heading)
}

func TestNormalizeDocumentNonObject(t *testing.T) {
	content := Normalize(output.FormatDocument, "plain text body")
	require.Equal(t, "Untitled Document", content.Title)
	require.Len(t, content.Sections, 1)
	require.Equal(t, "plain text body", content.Sections[0].Content)
}

func TestNormalizeDocumentNestedContentBecomesJSON(t *testing.T) {
	content := Normalize(output.FormatDocument, map[string]any{
		"sections": []any{
			map[string]any{"heading": "Data", "content": map[string]any{"k": "v"}},
		},
	})
	require.Equal(t, `{"k":"v"}`, content.Sections[0].Content)
}

func TestCoerceStringList(t *testing.T) {
	require.Nil(t, coerceStringList(nil))
	require.Nil(t, coerceStringList("   "))
	require.Equal(t, []string{"42"}, coerceStringList(42))
	require.Equal(t, []string{"a", "b"}, coerceStringList([]any{"a", "", "b"}))
}
