//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package output

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Result holds the outcome of resolving one output format: either a parsed
// value or the error that prevented one. The zero Result is "unresolved" and
// reports neither. A nil value is a valid success: models may legitimately
// complete with the JSON value null.
type Result struct {
	value    any
	err      error
	resolved bool
}

// Ok returns a Result carrying a value.
func Ok(value any) Result {
	return Result{value: value, resolved: true}
}

// Err returns a Result carrying an error.
func Err(err error) Result {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result{err: err, resolved: true}
}

// Errf returns a Result carrying a formatted error.
func Errf(format string, args ...any) Result {
	return Result{err: fmt.Errorf(format, args...), resolved: true}
}

// Value returns the carried value and whether the result is a success.
func (r Result) Value() (any, bool) {
	return r.value, r.resolved && r.err == nil
}

// Err returns the carried error, or nil for a success.
func (r Result) Err() error {
	return r.err
}

// Resolved reports whether the result carries either a value or an error.
func (r Result) Resolved() bool {
	return r.resolved
}

// MarshalJSON renders a success as its value and a failure as
// {"error": "..."} so callers inspect slots uniformly.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(map[string]string{"error": r.err.Error()})
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON restores a Result from its marshaled form. An object with a
// single string "error" field becomes a failure; everything else a success.
func (r *Result) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if m, ok := value.(map[string]any); ok && len(m) == 1 {
		if msg, ok := m["error"].(string); ok {
			*r = Err(errors.New(msg))
			return nil
		}
	}
	*r = Ok(value)
	return nil
}

// Bag maps output formats to their resolved results. Besides the requested
// model formats it also carries sink outcome slots such as TaskResultKey and
// ChatResultKey entries.
type Bag map[Format]Result

// Set stores the result for a format.
func (b Bag) Set(format Format, result Result) {
	b[format] = result
}

// Get returns the result for a format.
func (b Bag) Get(format Format) (Result, bool) {
	result, ok := b[format]
	return result, ok
}

// Value returns the success value for a format, or nil and false when the
// slot is absent or an error.
func (b Bag) Value(format Format) (any, bool) {
	result, ok := b[format]
	if !ok {
		return nil, false
	}
	return result.Value()
}
