//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package output defines the output formats, per-format results and node
// graph metadata that flow through a workflow run.
package output

import "fmt"

// Format identifies the shape of data a model call should produce.
type Format string

// Known output formats.
const (
	// FormatPPT is a slide deck.
	FormatPPT Format = "ppt"
	// FormatDocument is a sectioned text document.
	FormatDocument Format = "document"
	// FormatAPI marks a pure data-sink node. It has no generative step and
	// is skipped during model dispatch.
	FormatAPI Format = "api"
	// FormatDataAnalysis is an insights/recommendations structure.
	FormatDataAnalysis Format = "data_analysis"
	// FormatTask is a list of task descriptors.
	FormatTask Format = "task"
	// FormatChat is a chat message.
	FormatChat Format = "chat"
	// FormatJSON is generic well-structured JSON.
	FormatJSON Format = "json"
	// FormatText is plain text wrapped in JSON.
	FormatText Format = "text"
)

// formatAliases maps legacy format names to their canonical keys.
var formatAliases = map[Format]Format{
	"ppt_generation":      FormatPPT,
	"document_generation": FormatDocument,
	"task_creation":       FormatTask,
	"chat_message":        FormatChat,
}

// Normalize resolves legacy aliases to canonical format keys. Unknown
// formats are returned unchanged; dispatch handles them with a generic
// prompt rather than rejecting them.
func (f Format) Normalize() Format {
	if canonical, ok := formatAliases[f]; ok {
		return canonical
	}
	return f
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// NormalizeAll normalizes a list of raw format names, preserving order and
// dropping duplicates after alias resolution.
func NormalizeAll(raw []string) []Format {
	seen := make(map[Format]bool, len(raw))
	formats := make([]Format, 0, len(raw))
	for _, r := range raw {
		f := Format(r).Normalize()
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats
}

// TaskResultKey is the bag key task sink outcomes are stored under.
const TaskResultKey Format = "task_result"

// ChatResultKey returns the bag key a chat sink outcome is stored under for
// the given node.
func ChatResultKey(nodeID string) Format {
	return Format(fmt.Sprintf("chat_result_%s", nodeID))
}
