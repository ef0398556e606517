//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the workflow store.
package inmemory

import (
	"context"
	"sort"
	"sync"

	"trpc.group/trpc-go/trpc-flow-go/workflow"
)

// Store is an in-memory implementation of workflow.Store. It is suitable for
// testing and development environments.
type Store struct {
	mu        sync.RWMutex
	workflows map[string]*workflow.Workflow
}

// NewStore creates a new in-memory workflow store.
func NewStore() *Store {
	return &Store{
		workflows: make(map[string]*workflow.Workflow),
	}
}

// Create stores a new workflow.
func (s *Store) Create(ctx context.Context, w *workflow.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *w
	s.workflows[w.ID] = &clone
	return nil
}

// Get returns the workflow with the given id.
func (s *Store) Get(ctx context.Context, id string) (*workflow.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workflows[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	clone := *w
	return &clone, nil
}

// Update replaces a stored workflow.
func (s *Store) Update(ctx context.Context, w *workflow.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workflows[w.ID]; !ok {
		return workflow.ErrNotFound
	}
	clone := *w
	s.workflows[w.ID] = &clone
	return nil
}

// Delete removes a workflow.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workflows[id]; !ok {
		return workflow.ErrNotFound
	}
	delete(s.workflows, id)
	return nil
}

// List returns workflows owned by the user plus public ones, sorted by id
// for deterministic output.
func (s *Store) List(ctx context.Context, userID string) ([]*workflow.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*workflow.Workflow
	for _, w := range s.workflows {
		if w.OwnerID == userID || w.Visibility == workflow.VisibilityPublic {
			clone := *w
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
