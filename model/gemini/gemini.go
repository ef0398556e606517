//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini provides Gemini model implementations backed by the
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-flow-go/model"
)

// options contains configuration options for creating a Model.
type options struct {
	// clientConfig for building the genai client. When nil, the SDK resolves
	// credentials from the GOOGLE_API_KEY / GEMINI_API_KEY environment.
	clientConfig *genai.ClientConfig
}

// Option configures the Gemini model.
type Option func(*options)

// WithClientConfig sets the ClientConfig used for genai client initialization.
func WithClientConfig(c *genai.ClientConfig) Option {
	return func(o *options) {
		o.clientConfig = c
	}
}

// Model implements the model.Model interface for the Gemini API.
type Model struct {
	client *genai.Client
	name   string
}

// New creates a new Gemini model.
func New(ctx context.Context, name string, opts ...Option) (*Model, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	client, err := genai.NewClient(ctx, o.clientConfig)
	if err != nil {
		return nil, err
	}
	return &Model{
		client: client,
		name:   name,
	}, nil
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{
		Name: m.name,
	}
}

// GenerateContent implements the model.Model interface.
func (m *Model) GenerateContent(
	ctx context.Context,
	request *model.Request,
) (*model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}
	contents, config := m.buildChatRequest(request)

	chatCompletion, err := m.client.Models.GenerateContent(ctx, m.name, contents, config)
	if err != nil {
		return &model.Response{
			Error: &model.ResponseError{
				Message: err.Error(),
				Type:    model.ErrorTypeAPIError,
			},
			Timestamp: time.Now(),
		}, nil
	}
	return m.buildResponse(chatCompletion), nil
}

func (m *Model) buildChatRequest(
	request *model.Request,
) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	if request.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*request.Temperature))
	}
	if request.MaxTokens != nil {
		config.MaxOutputTokens = int32(*request.MaxTokens)
	}
	if request.JSONOutput {
		config.ResponseMIMEType = "application/json"
	}

	contents := make([]*genai.Content, 0, len(request.Messages))
	for _, msg := range request.Messages {
		switch msg.Role {
		case model.RoleSystem:
			// Gemini carries the system prompt as a config-level instruction.
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case model.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents, config
}

func (m *Model) buildResponse(chatCompletion *genai.GenerateContentResponse) *model.Response {
	response := &model.Response{
		ID:        chatCompletion.ResponseID,
		Model:     m.name,
		Timestamp: time.Now(),
	}
	for i, candidate := range chatCompletion.Candidates {
		var content string
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				content += part.Text
			}
		}
		choice := model.Choice{
			Index: i,
			Message: model.Message{
				Role:    model.RoleAssistant,
				Content: content,
			},
		}
		if candidate.FinishReason != "" {
			finishReason := string(candidate.FinishReason)
			choice.FinishReason = &finishReason
		}
		response.Choices = append(response.Choices, choice)
	}
	if usage := chatCompletion.UsageMetadata; usage != nil {
		response.Usage = &model.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return response
}
