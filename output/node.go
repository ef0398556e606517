//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package output

import (
	"encoding/json"
	"fmt"
)

// NodeType identifies what kind of output destination a node is.
type NodeType string

// Known node types.
const (
	NodeTypeAPI      NodeType = "api"
	NodeTypePPT      NodeType = "ppt"
	NodeTypeDocument NodeType = "document"
	NodeTypeTask     NodeType = "task"
	NodeTypeChat     NodeType = "chat"
	NodeTypeJSON     NodeType = "json"
)

// Settings is the per-type configuration of a node. Each variant carries
// only the fields its node type needs; validation happens once when raw
// caller metadata is parsed into a Node.
type Settings interface {
	settingsType() NodeType
}

// APISettings configures an API node: the HTTP call to perform with the
// upstream node's data as body.
type APISettings struct {
	// URL is the endpoint to call.
	URL string `json:"url"`
	// Method is the HTTP method. Defaults to POST.
	Method string `json:"method,omitempty"`
	// Headers are extra request headers.
	Headers map[string]string `json:"headers,omitempty"`
}

func (APISettings) settingsType() NodeType { return NodeTypeAPI }

// ChatSettings configures a chat node: the sessions to broadcast to and the
// message template the resolved content is substituted into.
type ChatSettings struct {
	// SessionIDs are the chat sessions the message is fanned out to.
	SessionIDs []string `json:"chatSessionIds"`
	// MessageTemplate is substituted with the resolved content via the
	// {{content}} placeholder. When empty the content is sent as is.
	MessageTemplate string `json:"messageTemplate,omitempty"`
	// MessageFormat is "markdown" (default) or "text". Text messages have
	// markdown syntax stripped before dispatch.
	MessageFormat string `json:"messageFormat,omitempty"`
}

func (ChatSettings) settingsType() NodeType { return NodeTypeChat }

// TaskSettings configures a task node: where created tasks are filed.
type TaskSettings struct {
	// TeamID is the team owning the target section.
	TeamID string `json:"teamId"`
	// ProjectID is the project tasks are created in.
	ProjectID string `json:"projectId,omitempty"`
}

func (TaskSettings) settingsType() NodeType { return NodeTypeTask }

// DataSettings configures a json data node feeding downstream sinks.
type DataSettings struct {
	// Format is the output format this node produces. Defaults to "json".
	Format Format `json:"format,omitempty"`
}

func (DataSettings) settingsType() NodeType { return NodeTypeJSON }

// DocumentSettings configures a document or slide-deck node.
type DocumentSettings struct {
	// Filename overrides the generated artifact filename.
	Filename string `json:"filename,omitempty"`
}

func (DocumentSettings) settingsType() NodeType { return NodeTypeDocument }

// Node is one caller-declared output destination participating in a run.
// Nodes are supplied fresh each run; the engine never stores them.
type Node struct {
	// ID is the node identifier, unique within one run.
	ID string
	// Type is the node type.
	Type NodeType
	// Settings is the validated, type-specific configuration.
	Settings Settings
}

// ParseNode validates raw caller-supplied node settings into a typed Node.
// Unknown node types and missing required fields are rejected here so sinks
// never see malformed settings.
func ParseNode(id string, raw map[string]any) (Node, error) {
	if id == "" {
		return Node{}, fmt.Errorf("node id is required")
	}
	typeName, _ := raw["type"].(string)
	if typeName == "" {
		return Node{}, fmt.Errorf("node %q: type is required", id)
	}

	node := Node{ID: id, Type: NodeType(typeName)}
	switch node.Type {
	case NodeTypeAPI:
		var settings APISettings
		if err := decodeSettings(raw, &settings); err != nil {
			return Node{}, fmt.Errorf("node %q: %w", id, err)
		}
		if settings.URL == "" {
			return Node{}, fmt.Errorf("node %q: api node requires a url", id)
		}
		if settings.Method == "" {
			settings.Method = "POST"
		}
		node.Settings = settings
	case NodeTypeChat:
		var settings ChatSettings
		if err := decodeSettings(raw, &settings); err != nil {
			return Node{}, fmt.Errorf("node %q: %w", id, err)
		}
		if len(settings.SessionIDs) == 0 {
			return Node{}, fmt.Errorf("node %q: chat node requires at least one session id", id)
		}
		node.Settings = settings
	case NodeTypeTask:
		var settings TaskSettings
		if err := decodeSettings(raw, &settings); err != nil {
			return Node{}, fmt.Errorf("node %q: %w", id, err)
		}
		if settings.TeamID == "" {
			return Node{}, fmt.Errorf("node %q: task node requires a team id", id)
		}
		node.Settings = settings
	case NodeTypeJSON:
		var settings DataSettings
		if err := decodeSettings(raw, &settings); err != nil {
			return Node{}, fmt.Errorf("node %q: %w", id, err)
		}
		if settings.Format == "" {
			settings.Format = FormatJSON
		}
		node.Settings = settings
	case NodeTypePPT, NodeTypeDocument:
		var settings DocumentSettings
		if err := decodeSettings(raw, &settings); err != nil {
			return Node{}, fmt.Errorf("node %q: %w", id, err)
		}
		node.Settings = settings
	default:
		return Node{}, fmt.Errorf("node %q: unknown node type %q", id, typeName)
	}
	return node, nil
}

// ParseNodes validates a full outputSettings map keyed by node id.
func ParseNodes(raw map[string]map[string]any) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for id, settings := range raw {
		node, err := ParseNode(id, settings)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// decodeSettings round-trips a raw settings map through JSON into a typed
// settings struct, so field naming follows the same camelCase convention the
// editor emits.
func decodeSettings(raw map[string]any, target any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}
