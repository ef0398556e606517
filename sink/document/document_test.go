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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
	artifactinmemory "trpc.group/trpc-go/trpc-flow-go/artifact/inmemory"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

func testSession() artifact.SessionInfo {
	return artifact.SessionInfo{AppName: "flow", UserID: "u1", ExecutionID: "run-1"}
}

func TestExecuteRendersDeck(t *testing.T) {
	artifacts := artifactinmemory.NewService()
	g := NewGenerator(artifacts)

	result := output.Ok(map[string]any{
		"title": "Q3 Review",
		"slides": []any{
			map[string]any{"type": "title", "title": "Q3 Review"},
			map[string]any{"title": "Wins", "bullets": []any{"p99 down"}},
		},
	})
	url, err := g.Execute(context.Background(), testSession(), output.FormatPPT, result, output.DocumentSettings{})
	require.NoError(t, err)
	require.NotEmpty(t, url)

	art, err := artifacts.LoadArtifact(context.Background(), testSession(), "ppt.pdf")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", art.MimeType)
	require.NotEmpty(t, art.Data)
}

func TestExecuteRendersDocx(t *testing.T) {
	artifacts := artifactinmemory.NewService()
	g := NewGenerator(artifacts)

	result := output.Ok(map[string]any{
		"title": "Postmortem",
		"sections": []any{
			map[string]any{"heading": "Impact", "content": "12 minutes of downtime"},
		},
	})
	url, err := g.Execute(context.Background(), testSession(), output.FormatDocument, result,
		output.DocumentSettings{Filename: "postmortem.docx"})
	require.NoError(t, err)
	require.Contains(t, url, "postmortem.docx")
}

func TestExecuteErrorResult(t *testing.T) {
	g := NewGenerator(artifactinmemory.NewService())
	_, err := g.Execute(context.Background(), testSession(), output.FormatPPT,
		output.Errf("empty completion"), output.DocumentSettings{})
	require.ErrorContains(t, err, "empty completion")
}

func TestExecuteUnknownFormat(t *testing.T) {
	g := NewGenerator(artifactinmemory.NewService())
	_, err := g.Execute(context.Background(), testSession(), output.FormatChat,
		output.Ok("x"), output.DocumentSettings{})
	require.ErrorContains(t, err, "no renderer")
}
