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
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
)

// DeckRenderer renders a slide deck as a landscape PDF, one page per slide.
type DeckRenderer struct{}

// NewDeckRenderer creates a PDF slide-deck renderer.
func NewDeckRenderer() *DeckRenderer {
	return &DeckRenderer{}
}

// Render implements the Renderer interface.
func (r *DeckRenderer) Render(ctx context.Context, content *Content) (*artifact.Artifact, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(content.Title, true)

	slides := content.Slides
	if len(slides) == 0 {
		slides = []Slide{{Type: "title", Title: content.Title}}
	}
	for _, slide := range slides {
		pdf.AddPage()
		switch slide.Type {
		case "title":
			pdf.SetFont("Helvetica", "B", 36)
			pdf.SetY(80)
			pdf.MultiCell(0, 16, slide.Title, "", "C", false)
			if slide.Subtitle != "" {
				pdf.SetFont("Helvetica", "", 20)
				pdf.MultiCell(0, 12, slide.Subtitle, "", "C", false)
			}
		case "section":
			pdf.SetFont("Helvetica", "B", 30)
			pdf.SetY(90)
			pdf.MultiCell(0, 14, slide.Title, "", "C", false)
		default:
			pdf.SetFont("Helvetica", "B", 24)
			pdf.SetY(20)
			pdf.MultiCell(0, 12, slide.Title, "", "L", false)
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "", 16)
			for _, bullet := range slide.Bullets {
				pdf.MultiCell(0, 10, fmt.Sprintf("- %s", bullet), "", "L", false)
				pdf.Ln(2)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &artifact.Artifact{
		Data:     buf.Bytes(),
		MimeType: "application/pdf",
		Name:     content.Title,
	}, nil
}
