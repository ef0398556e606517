//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	artifactinmemory "trpc.group/trpc-go/trpc-flow-go/artifact/inmemory"
	"trpc.group/trpc-go/trpc-flow-go/model"
	"trpc.group/trpc-go/trpc-flow-go/runner"
	"trpc.group/trpc-go/trpc-flow-go/workflow"
	workflowinmemory "trpc.group/trpc-go/trpc-flow-go/workflow/inmemory"
)

type staticModel struct {
	name string
	text string
}

func (m *staticModel) Info() model.Info { return model.Info{Name: m.name} }

func (m *staticModel) GenerateContent(context.Context, *model.Request) (*model.Response, error) {
	return &model.Response{
		Choices: []model.Choice{{Message: model.NewAssistantMessage(m.text)}},
	}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := workflowinmemory.NewStore()
	r := runner.New(store, artifactinmemory.NewService(),
		runner.WithModelResolver(func(_ context.Context, id string) (model.Model, error) {
			return &staticModel{name: id, text: `{"ok": true}`}, nil
		}))
	srv := httptest.NewServer(New(workflow.NewService(store), r).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, userID string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set(userHeader, userID)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestWorkflowCRUD(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/workflows", "u1", map[string]any{
		"name":   "weekly digest",
		"prompt": "Summarize {{topic}}",
		"type":   "json",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[workflow.Workflow](t, resp)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "u1", created.OwnerID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/workflows/"+created.ID, "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[workflow.Workflow](t, resp)
	require.Equal(t, "weekly digest", got.Name)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/workflows/"+created.ID, "u1", map[string]any{
		"name":   "daily digest",
		"prompt": got.Prompt,
		"type":   got.Type,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[workflow.Workflow](t, resp)
	require.Equal(t, "daily digest", updated.Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/workflows", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]workflow.Workflow](t, resp)
	require.Len(t, list, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/workflows/"+created.ID, "u1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/workflows/"+created.ID, "u1", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRequiresUserHeader(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/workflows", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGetForeignPrivateWorkflowForbidden(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/workflows", "owner", map[string]any{
		"name":   "secret",
		"prompt": "hi",
	})
	created := decode[workflow.Workflow](t, resp)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/workflows/"+created.ID, "stranger", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestExecuteWorkflow(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/workflows", "u1", map[string]any{
		"name":   "digest",
		"prompt": "Summarize {{topic}}",
	})
	created := decode[workflow.Workflow](t, resp)

	url := fmt.Sprintf("%s/api/v1/workflows/%s/execute", srv.URL, created.ID)
	resp = doJSON(t, http.MethodPost, url, "u1", map[string]any{
		"models":        []string{"gpt-4o-mini"},
		"outputFormats": []string{"json"},
		"inputs":        map[string]any{"topic": "latency"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	response := decode[runner.Response](t, resp)
	require.Equal(t, created.ID, response.WorkflowID)
	require.NotEmpty(t, response.ExecutionID)
	require.Equal(t, []string{"json"}, response.OutputFormats)

	value, ok := response.Results.Value("json")
	require.True(t, ok)
	require.Equal(t, map[string]any{"ok": true}, value)
}

func TestExecuteUnknownWorkflow(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/workflows/nope/execute", "u1", map[string]any{})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
