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
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

// flakyDispatcher fails for the configured sessions and records the rest.
type flakyDispatcher struct {
	failing map[string]bool
	sent    map[string]string
}

func newFlakyDispatcher(failing ...string) *flakyDispatcher {
	d := &flakyDispatcher{failing: make(map[string]bool), sent: make(map[string]string)}
	for _, id := range failing {
		d.failing[id] = true
	}
	return d
}

func (d *flakyDispatcher) SendMessage(_ context.Context, sessionID, content string) (string, error) {
	if d.failing[sessionID] {
		return "", fmt.Errorf("session %s unreachable", sessionID)
	}
	d.sent[sessionID] = content
	return "msg-" + sessionID, nil
}

func TestExecuteBroadcastsToAllSessions(t *testing.T) {
	d := newFlakyDispatcher()
	b := NewBroadcaster(d)

	outcome := b.Execute(context.Background(), output.ChatSettings{
		SessionIDs: []string{"s1", "s2"},
	}, output.Bag{
		output.FormatChat: output.Ok(map[string]any{"message": "build green"}),
	})
	require.True(t, outcome.Success)
	require.Equal(t, []string{"msg-s1", "msg-s2"}, outcome.MessageIDs)
	require.Equal(t, "build green", d.sent["s1"])
	require.Equal(t, "build green", d.sent["s2"])
}

func TestExecutePerSessionFailureIsolation(t *testing.T) {
	d := newFlakyDispatcher("s2")
	b := NewBroadcaster(d)

	outcome := b.Execute(context.Background(), output.ChatSettings{
		SessionIDs: []string{"s1", "s2", "s3"},
	}, output.Bag{
		output.FormatChat: output.Ok(map[string]any{"message": "hi"}),
	})
	require.True(t, outcome.Success)
	require.Len(t, outcome.MessageIDs, 2)
	require.Equal(t, 1, outcome.SessionsFailed)
	require.Len(t, outcome.Errors, 1)
}

func TestExecuteAllSessionsFail(t *testing.T) {
	d := newFlakyDispatcher("s1")
	b := NewBroadcaster(d)

	outcome := b.Execute(context.Background(), output.ChatSettings{
		SessionIDs: []string{"s1"},
	}, output.Bag{output.FormatChat: output.Ok(map[string]any{"message": "hi"})})
	require.False(t, outcome.Success)
}

func TestExecuteTemplateSubstitution(t *testing.T) {
	d := newFlakyDispatcher()
	b := NewBroadcaster(d)

	b.Execute(context.Background(), output.ChatSettings{
		SessionIDs:      []string{"s1"},
		MessageTemplate: "Daily update: {{content}} -- end",
	}, output.Bag{output.FormatChat: output.Ok(map[string]any{"message": "all systems go"})})
	require.Equal(t, "Daily update: all systems go -- end", d.sent["s1"])
}

func TestExecuteTextFormatStripsMarkdown(t *testing.T) {
	d := newFlakyDispatcher()
	b := NewBroadcaster(d)

	b.Execute(context.Background(), output.ChatSettings{
		SessionIDs:    []string{"s1"},
		MessageFormat: "text",
	}, output.Bag{output.FormatChat: output.Ok(map[string]any{"message": "**bold** and _quiet_"})})
	require.Equal(t, "bold and quiet", d.sent["s1"])
}

func TestResolveContentFallbacks(t *testing.T) {
	// chat format with a message field wins.
	content := resolveContent(output.Bag{
		output.FormatChat: output.Ok(map[string]any{"message": "primary"}),
		output.FormatJSON: output.Ok("secondary"),
	})
	require.Equal(t, "primary", content)

	// chat result without a message field is stringified.
	content = resolveContent(output.Bag{
		output.FormatChat: output.Ok(map[string]any{"note": "solo value"}),
	})
	require.Equal(t, "solo value", content)

	// json falls back before text.
	content = resolveContent(output.Bag{
		output.FormatJSON: output.Ok(map[string]any{"a": "x", "b": "y"}),
	})
	require.JSONEq(t, `{"a":"x","b":"y"}`, content)

	// Nothing usable still broadcasts a placeholder.
	content = resolveContent(output.Bag{
		output.FormatChat: output.Errf("empty completion"),
	})
	require.Equal(t, noContentPlaceholder, content)
}
