//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package recorder persists the audit snapshot of one workflow run.
package recorder

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

// Record is the immutable audit snapshot of one run. Records are created
// once at the end of a run and never updated or deleted.
type Record struct {
	// ID is the record identifier.
	ID string `json:"id"`
	// WorkflowID is the executed workflow.
	WorkflowID string `json:"workflow_id"`
	// UserID is the user that ran the workflow.
	UserID string `json:"user_id"`
	// Models is the configured model ids joined as one label.
	Models string `json:"models"`
	// Inputs is the raw input set of the run.
	Inputs map[string]any `json:"inputs"`
	// Results is the full result bag, sink outcome slots included.
	Results output.Bag `json:"results"`
	// OutputFormats is the requested format list, normalized.
	OutputFormats []string `json:"output_formats"`
	// DocumentURLs maps document formats to their uploaded URLs, with
	// <format>_error sibling keys for failed documents.
	DocumentURLs map[string]string `json:"document_urls"`
	// APIResponses maps api node ids to their HTTP outcomes.
	APIResponses map[string]any `json:"api_responses"`
	// CreatedAt is when the record was written.
	CreatedAt time.Time `json:"created_at"`
}

// Recorder appends execution records to an audit store.
type Recorder interface {
	// Record persists one execution record.
	Record(ctx context.Context, record *Record) error
	// ListByWorkflow returns the records of one workflow, newest first.
	ListByWorkflow(ctx context.Context, workflowID string) ([]*Record, error)
}
