//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package workflow defines reusable workflow definitions and their storage.
package workflow

import (
	"context"
	"errors"
	"time"
)

// Visibility controls who can read a workflow.
type Visibility string

// Visibility constants.
const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Workflow is a reusable prompt template plus a declared output type. It is
// read-only during execution and mutated only through Service.Update.
type Workflow struct {
	// ID is the workflow identifier.
	ID string `json:"id"`
	// OwnerID is the user that created the workflow.
	OwnerID string `json:"owner_id"`
	// Name is a human readable label.
	Name string `json:"name"`
	// Prompt is the template with {{name}}-style placeholders.
	Prompt string `json:"prompt"`
	// Type is the declared default output type.
	Type string `json:"type"`
	// Visibility controls read access.
	Visibility Visibility `json:"visibility"`
	// CreatedAt is the creation time.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last update time.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store errors.
var (
	// ErrNotFound indicates the workflow does not exist.
	ErrNotFound = errors.New("workflow not found")
	// ErrPermissionDenied indicates the caller does not own the workflow.
	ErrPermissionDenied = errors.New("permission denied")
)

// Store persists workflow definitions.
type Store interface {
	// Create stores a new workflow.
	Create(ctx context.Context, w *Workflow) error
	// Get returns the workflow with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Workflow, error)
	// Update replaces a stored workflow.
	Update(ctx context.Context, w *Workflow) error
	// Delete removes a workflow, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// List returns the workflows visible to the given user.
	List(ctx context.Context, userID string) ([]*Workflow, error)
}
