//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package chat executes chat-broadcast sinks: it resolves message content
// from the result bag and fans it out to the configured chat sessions.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// noContentPlaceholder is sent when no format resolved to usable content.
const noContentPlaceholder = "[no content generated]"

// contentPlaceholder is the template slot the resolved content fills.
const contentPlaceholder = "{{content}}"

// Dispatcher is the external chat subsystem. Its business rules are opaque
// to the engine; it receives already-prepared message payloads.
type Dispatcher interface {
	// SendMessage delivers content to one chat session and returns the
	// created message id.
	SendMessage(ctx context.Context, sessionID, content string) (string, error)
}

// Outcome is the result of broadcasting one chat node.
type Outcome struct {
	Success        bool     `json:"success"`
	MessageIDs     []string `json:"messageIds,omitempty"`
	SessionsFailed int      `json:"sessionsFailed,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// Broadcaster executes chat sinks against a Dispatcher.
type Broadcaster struct {
	dispatcher Dispatcher
}

// NewBroadcaster creates a chat sink broadcaster.
func NewBroadcaster(dispatcher Dispatcher) *Broadcaster {
	return &Broadcaster{dispatcher: dispatcher}
}

// Execute resolves the message content for one chat node and dispatches it
// to every configured session as one batch. Per-session failures are
// collected; they never abort the remaining sessions.
func (b *Broadcaster) Execute(ctx context.Context, settings output.ChatSettings, bag output.Bag) *Outcome {
	content := resolveContent(bag)
	if settings.MessageTemplate != "" {
		content = strings.ReplaceAll(settings.MessageTemplate, contentPlaceholder, content)
	}
	if settings.MessageFormat == "text" {
		content = StripMarkdown(content)
	}

	outcome := &Outcome{}
	for _, sessionID := range settings.SessionIDs {
		messageID, err := b.dispatcher.SendMessage(ctx, sessionID, content)
		if err != nil {
			log.Warnf("chat sink: send to session %s: %v", sessionID, err)
			outcome.SessionsFailed++
			outcome.Errors = append(outcome.Errors, err.Error())
			continue
		}
		outcome.MessageIDs = append(outcome.MessageIDs, messageID)
	}
	outcome.Success = len(outcome.MessageIDs) > 0
	return outcome
}

// resolveContent picks the message body: the chat format result wins, then
// generic json, then text, then a literal placeholder so a broadcast always
// carries something inspectable.
func resolveContent(bag output.Bag) string {
	if value, ok := bag.Value(output.FormatChat); ok {
		if root, ok := value.(map[string]any); ok {
			if message, ok := root["message"].(string); ok && message != "" {
				return message
			}
		}
		return stringify(value)
	}
	for _, format := range []output.Format{output.FormatJSON, output.FormatText} {
		if value, ok := bag.Value(format); ok {
			return stringify(value)
		}
	}
	return noContentPlaceholder
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		// A single-string object reads better as its value.
		if len(v) == 1 {
			for _, inner := range v {
				if s, ok := inner.(string); ok {
					return s
				}
			}
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
