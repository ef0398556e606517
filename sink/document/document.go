//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package document renders model output into slide decks and text documents
// and uploads them to durable storage.
package document

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// Content is the normalized data tree a renderer consumes. Slide decks fill
// Slides, text documents fill Sections.
type Content struct {
	Title    string
	Slides   []Slide
	Sections []Section
}

// Slide is one slide of a deck.
type Slide struct {
	Type     string
	Title    string
	Subtitle string
	Bullets  []string
}

// Section is one section of a text document.
type Section struct {
	Heading string
	Content string
}

// Renderer turns normalized content into a binary artifact. Renderers are
// opaque to the engine; they only see an already-normalized tree.
type Renderer interface {
	Render(ctx context.Context, content *Content) (*artifact.Artifact, error)
}

// Generator executes document sinks: it normalizes a model result, renders
// it and uploads the binary, returning the durable URL.
type Generator struct {
	renderers map[output.Format]Renderer
	artifacts artifact.Service
}

// NewGenerator creates a document generator with the default renderers: a
// PDF deck renderer for "ppt" and a docx renderer for "document".
func NewGenerator(artifacts artifact.Service) *Generator {
	return &Generator{
		renderers: map[output.Format]Renderer{
			output.FormatPPT:      NewDeckRenderer(),
			output.FormatDocument: NewDocxRenderer(),
		},
		artifacts: artifacts,
	}
}

// RegisterRenderer replaces the renderer for a format.
func (g *Generator) RegisterRenderer(format output.Format, renderer Renderer) {
	g.renderers[format] = renderer
}

// Execute renders the result for the given format and uploads the binary.
// Any failure in the normalize/render/upload chain is returned as an error
// for the caller to record; it never panics and performs no partial upload
// retries.
func (g *Generator) Execute(
	ctx context.Context,
	sessionInfo artifact.SessionInfo,
	format output.Format,
	result output.Result,
	settings output.DocumentSettings,
) (string, error) {
	renderer, ok := g.renderers[format]
	if !ok {
		return "", fmt.Errorf("no renderer registered for format %q", format)
	}
	if err := result.Err(); err != nil {
		return "", fmt.Errorf("%s result unavailable: %w", format, err)
	}
	value, ok := result.Value()
	if !ok {
		return "", fmt.Errorf("%s result unavailable", format)
	}

	content := Normalize(format, value)
	art, err := renderer.Render(ctx, content)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", format, err)
	}

	filename := settings.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s%s", format, extensionFor(art.MimeType))
	}
	url, err := g.artifacts.SaveArtifact(ctx, sessionInfo, filename, art)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", format, err)
	}
	log.Debugf("document sink uploaded %s artifact to %s", format, url)
	return url, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	default:
		return ""
	}
}
