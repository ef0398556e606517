//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/sink/task"
	"trpc.group/trpc-go/trpc-flow-go/sink/task/inmemory"
)

func settings() output.TaskSettings {
	return output.TaskSettings{TeamID: "team-9", ProjectID: "proj-1"}
}

func TestExecuteCreatesTasks(t *testing.T) {
	service := inmemory.NewService()
	e := task.NewExecutor(service)

	outcome := e.Execute(context.Background(), settings(), output.Ok(map[string]any{
		"tasks": []any{
			map[string]any{"title": "Fix flaky test", "description": "retry loop", "priority": "high"},
			map[string]any{"title": "Ship release"},
		},
	}))
	require.True(t, outcome.Success)
	require.Equal(t, 2, outcome.TasksCreated)
	require.Zero(t, outcome.TasksFailed)
	require.Equal(t, 2, service.TaskCount())

	created, ok := service.Task(outcome.Tasks[0].ID)
	require.True(t, ok)
	require.Equal(t, "Fix flaky test", created.Title)
	require.Equal(t, "proj-1", created.ProjectID)
}

func TestExecutePartialFailure(t *testing.T) {
	service := inmemory.NewService()
	e := task.NewExecutor(service)

	// Three valid descriptors and one without a title: the valid ones are
	// created, the malformed one is reported, the run still succeeds.
	outcome := e.Execute(context.Background(), settings(), output.Ok(map[string]any{
		"tasks": []any{
			map[string]any{"title": "one"},
			map[string]any{"title": "two"},
			map[string]any{"description": "no title"},
			map[string]any{"title": "three"},
		},
	}))
	require.True(t, outcome.Success)
	require.Equal(t, 3, outcome.TasksCreated)
	require.Equal(t, 1, outcome.TasksFailed)
	require.Len(t, outcome.FailedTasks, 1)
	require.Contains(t, outcome.FailedTasks[0].Error, "title")
}

func TestExecuteEmptyTaskList(t *testing.T) {
	e := task.NewExecutor(inmemory.NewService())
	outcome := e.Execute(context.Background(), settings(), output.Ok(map[string]any{
		"tasks": []any{},
	}))
	require.False(t, outcome.Success)
	require.Zero(t, outcome.TasksCreated)
}

func TestExecuteMalformedResult(t *testing.T) {
	e := task.NewExecutor(inmemory.NewService())

	outcome := e.Execute(context.Background(), settings(), output.Ok("not an object"))
	require.False(t, outcome.Success)
	require.NotEmpty(t, outcome.Error)

	outcome = e.Execute(context.Background(), settings(), output.Errf("model failed"))
	require.False(t, outcome.Success)
	require.Contains(t, outcome.Error, "model failed")
}

func TestExecuteReusesSection(t *testing.T) {
	service := inmemory.NewService()
	e := task.NewExecutor(service, task.WithSectionName("Automation"))

	first := e.Execute(context.Background(), settings(), output.Ok(map[string]any{
		"tasks": []any{map[string]any{"title": "one"}},
	}))
	second := e.Execute(context.Background(), settings(), output.Ok(map[string]any{
		"tasks": []any{map[string]any{"title": "two"}},
	}))
	require.True(t, first.Success)
	require.True(t, second.Success)

	a, ok := service.Task(first.Tasks[0].ID)
	require.True(t, ok)
	b, ok := service.Task(second.Tasks[0].ID)
	require.True(t, ok)
	require.Equal(t, a.SectionID, b.SectionID)
	require.NotEmpty(t, a.SectionID)
}
