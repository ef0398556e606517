//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package model

import "time"

// Error type constants for ResponseError.Type field.
const (
	ErrorTypeAPIError   = "api_error"
	ErrorTypeEmptyReply = "empty_reply"
)

// ResponseError represents an error from the model API.
type ResponseError struct {
	// Message is a human readable description of the error.
	Message string `json:"message"`
	// Type is the error category, e.g. "api_error".
	Type string `json:"type,omitempty"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return e.Message
}

// Choice represents a single completion choice.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the message content.
	Message Message `json:"message,omitempty"`

	// FinishReason is the reason the choice was finished.
	// "stop", "length", "content_filter", etc.
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens in the response.
	TotalTokens int `json:"total_tokens"`
}

// Response is a completion response from a model.
type Response struct {
	// ID is the provider-assigned identifier of the completion.
	ID string `json:"id,omitempty"`

	// Object is the object type returned by the provider.
	Object string `json:"object,omitempty"`

	// Created is the unix timestamp the completion was created at.
	Created int64 `json:"created,omitempty"`

	// Model is the model that produced the completion.
	Model string `json:"model,omitempty"`

	// Choices holds the completion choices.
	Choices []Choice `json:"choices,omitempty"`

	// Usage holds token usage information when the provider reports it.
	Usage *Usage `json:"usage,omitempty"`

	// Error holds the provider error, if any.
	Error *ResponseError `json:"error,omitempty"`

	// Timestamp is the local time the response was received.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Text returns the content of the first choice, or the empty string when the
// response carries no choices.
func (r *Response) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
