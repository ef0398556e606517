//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the execution
// recorder.
package inmemory

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-flow-go/recorder"
)

// Recorder is an in-memory implementation of recorder.Recorder. It is
// suitable for testing and development environments.
type Recorder struct {
	mu      sync.RWMutex
	records []*recorder.Record
}

// NewRecorder creates a new in-memory recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one execution record.
func (r *Recorder) Record(ctx context.Context, record *recorder.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

// ListByWorkflow returns the records of one workflow, newest first.
func (r *Recorder) ListByWorkflow(ctx context.Context, workflowID string) ([]*recorder.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*recorder.Record
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].WorkflowID == workflowID {
			clone := *r.records[i]
			result = append(result, &clone)
		}
	}
	return result, nil
}
