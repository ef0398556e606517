//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package jsonextract recovers a JSON value from raw model output that may
// wrap it in prose or leave braces unbalanced.
package jsonextract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract parses text into a JSON value. It first attempts a direct parse,
// then falls back to the substring between the first "{" and the last "}",
// then to a brace-depth truncation of that substring when it carries excess
// closing braces. It never invents structure that is not present in the
// input; if no attempt yields valid JSON, a descriptive error is returned.
func Extract(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("jsonextract: empty input")
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
		return value, nil
	}

	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first < 0 || last < 0 || first >= last {
		return nil, fmt.Errorf("jsonextract: no JSON object found in input")
	}

	candidate := trimmed[first : last+1]
	if err := json.Unmarshal([]byte(candidate), &value); err == nil {
		return value, nil
	}

	// Models sometimes over-emit trailing braces or punctuation. When the
	// candidate closes more braces than it opens, cut it at the point where
	// nesting first returns to zero.
	if strings.Count(candidate, "}") > strings.Count(candidate, "{") {
		if truncated, ok := truncateAtBalance(candidate); ok {
			if err := json.Unmarshal([]byte(truncated), &value); err == nil {
				return value, nil
			}
		}
	}

	return nil, fmt.Errorf("jsonextract: no valid JSON could be extracted from input")
}

// truncateAtBalance scans s tracking brace depth outside string literals and
// returns the prefix ending where depth first returns to zero after having
// been positive.
func truncateAtBalance(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	opened := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
