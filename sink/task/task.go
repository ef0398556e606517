//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package task executes task-batch sinks: it files tasks parsed from model
// output into the external task subsystem, isolating per-task failures.
package task

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// defaultSectionName is the section AI-created tasks are filed under.
const defaultSectionName = "AI Generated"

// CreateTaskRequest describes one task to create in the external subsystem.
type CreateTaskRequest struct {
	Title       string
	Description string
	Priority    string
	TeamID      string
	ProjectID   string
	SectionID   string
}

// Service is the external task subsystem. Its business rules are opaque to
// the engine; it is invoked with already-prepared payloads.
type Service interface {
	// FindSection returns the id of an existing section with the given name
	// for the team, or "" when none exists.
	FindSection(ctx context.Context, teamID, name string) (string, error)
	// CreateSection creates a section for the team and returns its id.
	CreateSection(ctx context.Context, teamID, name string) (string, error)
	// CreateTask creates one task and returns its id.
	CreateTask(ctx context.Context, req *CreateTaskRequest) (string, error)
}

// Created summarizes one successfully created task.
type Created struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Failed summarizes one task that could not be created.
type Failed struct {
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

// Outcome is the aggregate result of one task-batch sink execution.
type Outcome struct {
	Success      bool      `json:"success"`
	TasksCreated int       `json:"tasksCreated"`
	TasksFailed  int       `json:"tasksFailed"`
	Tasks        []Created `json:"tasks,omitempty"`
	FailedTasks  []Failed  `json:"failedTasks,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// options configures the Executor.
type options struct {
	sectionName string
}

// Option configures the Executor.
type Option func(*options)

// WithSectionName overrides the section AI tasks are filed under.
func WithSectionName(name string) Option {
	return func(o *options) {
		o.sectionName = name
	}
}

// Executor runs task-batch sinks against a task Service.
type Executor struct {
	service     Service
	sectionName string
}

// NewExecutor creates a task sink executor.
func NewExecutor(service Service, opts ...Option) *Executor {
	o := options{sectionName: defaultSectionName}
	for _, opt := range opts {
		opt(&o)
	}
	return &Executor{service: service, sectionName: o.sectionName}
}

// Execute files the tasks contained in the "task" format result. Tasks are
// created individually so one malformed descriptor never blocks the others;
// section resolution failures downgrade to unfiled tasks rather than
// aborting the batch.
func (e *Executor) Execute(ctx context.Context, settings output.TaskSettings, result output.Result) *Outcome {
	if err := result.Err(); err != nil {
		return &Outcome{Success: false, Error: fmt.Sprintf("task result unavailable: %v", err)}
	}
	value, ok := result.Value()
	if !ok {
		return &Outcome{Success: false, Error: "no task content generated"}
	}
	descriptors, err := parseTaskList(value)
	if err != nil {
		return &Outcome{Success: false, Error: err.Error()}
	}

	sectionID := e.resolveSection(ctx, settings.TeamID)

	outcome := &Outcome{}
	for i, descriptor := range descriptors {
		title, _ := descriptor["title"].(string)
		if title == "" {
			outcome.TasksFailed++
			outcome.FailedTasks = append(outcome.FailedTasks, Failed{
				Error: fmt.Sprintf("task %d: missing title", i),
			})
			continue
		}
		description, _ := descriptor["description"].(string)
		priority, _ := descriptor["priority"].(string)
		id, err := e.service.CreateTask(ctx, &CreateTaskRequest{
			Title:       title,
			Description: description,
			Priority:    priority,
			TeamID:      settings.TeamID,
			ProjectID:   settings.ProjectID,
			SectionID:   sectionID,
		})
		if err != nil {
			outcome.TasksFailed++
			outcome.FailedTasks = append(outcome.FailedTasks, Failed{Title: title, Error: err.Error()})
			continue
		}
		outcome.TasksCreated++
		outcome.Tasks = append(outcome.Tasks, Created{ID: id, Title: title})
	}
	outcome.Success = outcome.TasksCreated > 0
	return outcome
}

// resolveSection reuses the team's section when one exists and creates it
// otherwise. Failures are logged and treated as "no section": tasks are
// still created, just left unfiled.
func (e *Executor) resolveSection(ctx context.Context, teamID string) string {
	if teamID == "" {
		return ""
	}
	sectionID, err := e.service.FindSection(ctx, teamID, e.sectionName)
	if err != nil {
		log.Warnf("task sink: find section for team %s: %v", teamID, err)
		return ""
	}
	if sectionID != "" {
		return sectionID
	}
	sectionID, err = e.service.CreateSection(ctx, teamID, e.sectionName)
	if err != nil {
		log.Warnf("task sink: create section for team %s: %v", teamID, err)
		return ""
	}
	return sectionID
}

// parseTaskList extracts the task descriptor list from a parsed model value.
func parseTaskList(value any) ([]map[string]any, error) {
	root, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("task result is not an object")
	}
	rawTasks, ok := root["tasks"]
	if !ok {
		return nil, fmt.Errorf("task result has no tasks field")
	}
	list, ok := rawTasks.([]any)
	if !ok {
		return nil, fmt.Errorf("tasks field is not a list")
	}
	descriptors := make([]map[string]any, 0, len(list))
	for _, item := range list {
		descriptor, ok := item.(map[string]any)
		if !ok {
			// A non-object entry still occupies a slot so it is reported as
			// a failed task instead of vanishing.
			descriptor = map[string]any{}
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}
