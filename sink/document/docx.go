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
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
)

// DocxRenderer renders a sectioned document as a docx file.
type DocxRenderer struct{}

// NewDocxRenderer creates a docx document renderer.
func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Render implements the Renderer interface.
func (r *DocxRenderer) Render(ctx context.Context, content *Content) (*artifact.Artifact, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx: %w", err)
	}

	if _, err := doc.AddHeading(content.Title, 0); err != nil {
		return nil, fmt.Errorf("add title: %w", err)
	}
	for _, section := range content.Sections {
		if section.Heading != "" {
			if _, err := doc.AddHeading(section.Heading, 1); err != nil {
				return nil, fmt.Errorf("add heading: %w", err)
			}
		}
		if section.Content != "" {
			doc.AddParagraph(section.Content)
		}
	}

	// godocx writes to a path, so the document goes through a scratch file.
	dir, err := os.MkdirTemp("", "flowdoc")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "document.docx")
	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	return &artifact.Artifact{
		Data:     data,
		MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Name:     content.Title,
	}, nil
}
