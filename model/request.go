//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package model

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the role of the message author.
	Role Role `json:"role"`
	// Content is the message content.
	Content string `json:"content,omitempty"`
}

// NewSystemMessage creates a message with the system role.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a message with the user role.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a message with the assistant role.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// GenerationConfig contains the sampling and output configuration for a request.
type GenerationConfig struct {
	// Temperature controls randomness in generation.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens bounds the number of generated tokens.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// JSONOutput requests the provider's native JSON output mode when the
	// backend supports one. Backends without such a mode ignore it.
	JSONOutput bool `json:"json_output,omitempty"`
}

// Request is a completion request sent to a model.
type Request struct {
	// Messages is the conversation so far. The engine typically sends one
	// system message followed by one user message.
	Messages []Message `json:"messages"`

	GenerationConfig `json:",inline"`
}
