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
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

// Default titles used when the model omits one.
const (
	defaultDeckTitle     = "Untitled Presentation"
	defaultDocumentTitle = "Untitled Document"
)

// Normalize coerces a parsed model value into the nested shape the renderer
// for the format expects. Models frequently hand back bullets as a single
// comma-joined string, sections as one blob, or nested objects where the
// renderer wants text; all of those are coerced here rather than rejected.
func Normalize(format output.Format, value any) *Content {
	root, _ := value.(map[string]any)
	if format == output.FormatPPT {
		return normalizeDeck(root, value)
	}
	return normalizeDocument(root, value)
}

func normalizeDeck(root map[string]any, raw any) *Content {
	content := &Content{Title: defaultDeckTitle}
	if root == nil {
		// Whatever the model produced still becomes one slide so the run
		// yields a document instead of nothing.
		content.Slides = []Slide{{Type: "content", Title: defaultDeckTitle, Bullets: coerceStringList(raw)}}
		return content
	}
	if title := stringValue(root["title"]); title != "" {
		content.Title = title
	}
	slides, ok := root["slides"].([]any)
	if !ok {
		content.Slides = []Slide{{Type: "content", Title: content.Title, Bullets: coerceStringList(root["slides"])}}
		return content
	}
	for _, rawSlide := range slides {
		slideMap, ok := rawSlide.(map[string]any)
		if !ok {
			content.Slides = append(content.Slides, Slide{Type: "content", Bullets: coerceStringList(rawSlide)})
			continue
		}
		slide := Slide{
			Type:     stringValue(slideMap["type"]),
			Title:    stringValue(slideMap["title"]),
			Subtitle: stringValue(slideMap["subtitle"]),
			Bullets:  coerceStringList(slideMap["bullets"]),
		}
		if slide.Type == "" {
			slide.Type = "content"
		}
		content.Slides = append(content.Slides, slide)
	}
	return content
}

func normalizeDocument(root map[string]any, raw any) *Content {
	content := &Content{Title: defaultDocumentTitle}
	if root == nil {
		content.Sections = []Section{{Content: stringValue(raw)}}
		return content
	}
	if title := stringValue(root["title"]); title != "" {
		content.Title = title
	}
	sections, ok := root["sections"].([]any)
	if !ok {
		for _, line := range coerceStringList(root["sections"]) {
			content.Sections = append(content.Sections, Section{Content: line})
		}
		if len(content.Sections) == 0 {
			content.Sections = []Section{{Content: stringValue(root["content"])}}
		}
		return content
	}
	for _, rawSection := range sections {
		sectionMap, ok := rawSection.(map[string]any)
		if !ok {
			content.Sections = append(content.Sections, Section{Content: stringValue(rawSection)})
			continue
		}
		heading := stringValue(sectionMap["heading"])
		if heading == "" {
			heading = stringValue(sectionMap["title"])
		}
		content.Sections = append(content.Sections, Section{
			Heading: heading,
			Content: stringValue(sectionMap["content"]),
		})
	}
	return content
}

// coerceStringList turns whatever the model produced into a list of strings:
// arrays element-wise, JSON-encoded arrays by parsing, plain strings by
// newline then comma splitting, and nested objects by stringifying.
func coerceStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringValue(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return coerceStringList(parsed)
		}
		separator := ","
		if strings.Contains(trimmed, "\n") {
			separator = "\n"
		}
		var items []string
		for _, part := range strings.Split(trimmed, separator) {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items
	default:
		if s := stringValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// stringValue renders a value the renderer cannot consume directly as a
// string. Nested structures become compact JSON.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
