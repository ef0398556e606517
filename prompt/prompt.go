//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package prompt provides the per-format system prompts used for model
// dispatch.
package prompt

import (
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// genericPrompt is used for formats without a dedicated template.
const genericPrompt = `You are a structured data generator.
Respond with one well-structured JSON object that best represents the requested content.
Respond with JSON only.`

const pptPrompt = `You are a presentation designer.
Respond with one JSON object describing a slide deck:
{
  "title": "deck title",
  "slides": [
    {"type": "title", "title": "...", "subtitle": "..."},
    {"type": "content", "title": "...", "bullets": ["...", "..."]},
    {"type": "section", "title": "..."}
  ]
}
Every slide must carry a "type" of "title", "content" or "section".
Respond with JSON only.`

const documentPrompt = `You are a technical writer.
Respond with one JSON object describing a sectioned document:
{
  "title": "document title",
  "sections": [
    {"heading": "...", "content": "..."}
  ]
}
Respond with JSON only.`

const dataAnalysisPrompt = `You are a data analyst.
Respond with one JSON object:
{
  "summary": "...",
  "insights": ["...", "..."],
  "recommendations": ["...", "..."]
}
Respond with JSON only.`

const taskPrompt = `You are a project planner.
Respond with one JSON object:
{
  "tasks": [
    {"title": "...", "description": "...", "priority": "low|medium|high"}
  ]
}
Respond with JSON only.`

const chatPrompt = `You are a messaging assistant.
Respond with one JSON object:
{
  "message": "the chat message to send"
}
Respond with JSON only.`

const jsonPrompt = `You are a structured data generator.
Respond with exactly one JSON object capturing the requested data.
Respond with JSON only.`

// Registry maps output formats to system prompts. It is immutable after
// construction; build one and pass it into the dispatcher.
type Registry struct {
	prompts map[output.Format]string
}

// Option customizes a Registry during construction.
type Option func(map[output.Format]string)

// WithPrompt overrides or adds the system prompt for a format.
func WithPrompt(format output.Format, prompt string) Option {
	return func(prompts map[output.Format]string) {
		prompts[format] = prompt
	}
}

// NewRegistry builds the default prompt registry.
func NewRegistry(opts ...Option) *Registry {
	prompts := map[output.Format]string{
		output.FormatPPT:          pptPrompt,
		output.FormatDocument:     documentPrompt,
		output.FormatDataAnalysis: dataAnalysisPrompt,
		output.FormatTask:         taskPrompt,
		output.FormatChat:         chatPrompt,
		output.FormatJSON:         jsonPrompt,
		output.FormatText:         jsonPrompt,
	}
	for _, opt := range opts {
		opt(prompts)
	}
	return &Registry{prompts: prompts}
}

// SystemPrompt returns the system prompt for the given format. Unknown
// formats fall back to a generic well-structured JSON prompt.
func (r *Registry) SystemPrompt(format output.Format) string {
	if prompt, ok := r.prompts[format.Normalize()]; ok {
		return prompt
	}
	return genericPrompt
}
