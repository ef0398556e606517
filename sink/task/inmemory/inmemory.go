//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the task service.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-flow-go/sink/task"
)

// Service is an in-memory implementation of task.Service. It is suitable for
// testing and development environments.
type Service struct {
	mu       sync.Mutex
	sections map[string]string // "teamID/name" -> section id
	tasks    map[string]*task.CreateTaskRequest
}

// NewService creates a new in-memory task service.
func NewService() *Service {
	return &Service{
		sections: make(map[string]string),
		tasks:    make(map[string]*task.CreateTaskRequest),
	}
}

// FindSection returns the section id for the team and name, or "".
func (s *Service) FindSection(ctx context.Context, teamID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[sectionKey(teamID, name)], nil
}

// CreateSection creates a section for the team.
func (s *Service) CreateSection(ctx context.Context, teamID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sections[sectionKey(teamID, name)] = id
	return id, nil
}

// CreateTask stores one task and returns its id.
func (s *Service) CreateTask(ctx context.Context, req *task.CreateTaskRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	clone := *req
	s.tasks[id] = &clone
	return id, nil
}

// Task returns a stored task by id.
func (s *Service) Task(id string) (*task.CreateTaskRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

// TaskCount returns the number of stored tasks.
func (s *Service) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func sectionKey(teamID, name string) string {
	return fmt.Sprintf("%s/%s", teamID, name)
}
