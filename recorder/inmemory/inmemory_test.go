//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/recorder"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, r.Record(ctx, &recorder.Record{
			ID:         id,
			WorkflowID: "w1",
			Results:    output.Bag{output.FormatJSON: output.Ok("x")},
		}))
	}
	require.NoError(t, r.Record(ctx, &recorder.Record{ID: "other", WorkflowID: "w2"}))

	records, err := r.ListByWorkflow(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "run-3", records[0].ID)
	require.Equal(t, "run-1", records[2].ID)

	empty, err := r.ListByWorkflow(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestListClonesRecords(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()
	require.NoError(t, r.Record(ctx, &recorder.Record{ID: "run-1", WorkflowID: "w1", UserID: "u1"}))

	records, err := r.ListByWorkflow(ctx, "w1")
	require.NoError(t, err)
	records[0].UserID = "mutated"

	again, err := r.ListByWorkflow(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, "u1", again[0].UserID)
}
