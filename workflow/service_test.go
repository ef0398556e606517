//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/workflow"
	"trpc.group/trpc-go/trpc-flow-go/workflow/inmemory"
)

func newService() *workflow.Service {
	return workflow.NewService(inmemory.NewStore())
}

func TestCreateAssignsDefaults(t *testing.T) {
	s := newService()
	created, err := s.Create(context.Background(), "u1", &workflow.Workflow{
		Name:   "digest",
		Prompt: "Summarize {{topic}}",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "u1", created.OwnerID)
	require.Equal(t, workflow.VisibilityPrivate, created.Visibility)
	require.False(t, created.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	s := newService()
	_, err := s.Create(context.Background(), "", &workflow.Workflow{Prompt: "p"})
	require.Error(t, err)
	_, err = s.Create(context.Background(), "u1", &workflow.Workflow{})
	require.Error(t, err)
}

func TestGetVisibility(t *testing.T) {
	s := newService()
	private, err := s.Create(context.Background(), "owner", &workflow.Workflow{Prompt: "p"})
	require.NoError(t, err)
	public, err := s.Create(context.Background(), "owner", &workflow.Workflow{
		Prompt:     "p",
		Visibility: workflow.VisibilityPublic,
	})
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "owner", private.ID)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "stranger", private.ID)
	require.ErrorIs(t, err, workflow.ErrPermissionDenied)

	_, err = s.Get(context.Background(), "stranger", public.ID)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "owner", "missing")
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	s := newService()
	created, err := s.Create(context.Background(), "owner", &workflow.Workflow{
		Name:   "before",
		Prompt: "p",
	})
	require.NoError(t, err)

	_, err = s.Update(context.Background(), "stranger", &workflow.Workflow{
		ID:     created.ID,
		Prompt: "hijacked",
	})
	require.ErrorIs(t, err, workflow.ErrPermissionDenied)

	updated, err := s.Update(context.Background(), "owner", &workflow.Workflow{
		ID:     created.ID,
		Name:   "after",
		Prompt: "p2",
	})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Name)
	require.Equal(t, "p2", updated.Prompt)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	s := newService()
	created, err := s.Create(context.Background(), "owner", &workflow.Workflow{Prompt: "p"})
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(context.Background(), "stranger", created.ID),
		workflow.ErrPermissionDenied)
	require.NoError(t, s.Delete(context.Background(), "owner", created.ID))

	_, err = s.Get(context.Background(), "owner", created.ID)
	require.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestStoreCloneOnRead(t *testing.T) {
	store := inmemory.NewStore()
	original := &workflow.Workflow{ID: "w1", OwnerID: "u1", Prompt: "p"}
	require.NoError(t, store.Create(context.Background(), original))

	got, err := store.Get(context.Background(), "w1")
	require.NoError(t, err)
	got.Prompt = "mutated"

	again, err := store.Get(context.Background(), "w1")
	require.NoError(t, err)
	require.Equal(t, "p", again.Prompt)
}
