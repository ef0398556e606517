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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service exposes workflow CRUD with ownership checks. All mutations require
// the caller to own the workflow.
type Service struct {
	store Store
}

// NewService creates a workflow service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores a new workflow owned by userID.
func (s *Service) Create(ctx context.Context, userID string, w *Workflow) (*Workflow, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if w == nil || w.Prompt == "" {
		return nil, errors.New("workflow prompt is required")
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Visibility == "" {
		w.Visibility = VisibilityPrivate
	}
	now := time.Now()
	w.OwnerID = userID
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := s.store.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create workflow: %w", err)
	}
	return w, nil
}

// Get returns a workflow readable by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Workflow, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != userID && w.Visibility != VisibilityPublic {
		return nil, ErrPermissionDenied
	}
	return w, nil
}

// Update replaces the prompt, name, type and visibility of a workflow the
// caller owns.
func (s *Service) Update(ctx context.Context, userID string, w *Workflow) (*Workflow, error) {
	existing, err := s.store.Get(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		return nil, ErrPermissionDenied
	}
	existing.Name = w.Name
	existing.Prompt = w.Prompt
	existing.Type = w.Type
	if w.Visibility != "" {
		existing.Visibility = w.Visibility
	}
	existing.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update workflow: %w", err)
	}
	return existing, nil
}

// Delete removes a workflow the caller owns.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return ErrPermissionDenied
	}
	return s.store.Delete(ctx, id)
}

// List returns workflows visible to userID.
func (s *Service) List(ctx context.Context, userID string) ([]*Workflow, error) {
	return s.store.List(ctx, userID)
}
