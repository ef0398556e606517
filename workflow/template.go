//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package workflow

import (
	"fmt"
	"regexp"
)

// placeholderPattern matches {{name}}-style placeholders. Whitespace around
// the name is tolerated.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.-]+)\s*\}\}`)

// Substitute replaces {{name}} placeholders in the template with the values
// from inputs. Placeholders without a supplied value are left untouched so a
// missing input is visible in the resulting prompt instead of silently
// disappearing.
func Substitute(template string, inputs map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := inputs[name]
		if !ok {
			return match
		}
		return fmt.Sprintf("%v", value)
	})
}

// Placeholders returns the distinct placeholder names in the template, in
// first-appearance order.
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}
