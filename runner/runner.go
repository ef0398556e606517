//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package runner executes workflows: prompt resolution, multi-model
// dispatch, result merging and sink execution.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/model"
	"trpc.group/trpc-go/trpc-flow-go/model/provider"
	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/prompt"
	"trpc.group/trpc-go/trpc-flow-go/recorder"
	"trpc.group/trpc-go/trpc-flow-go/sink/chat"
	"trpc.group/trpc-go/trpc-flow-go/sink/document"
	"trpc.group/trpc-go/trpc-flow-go/sink/httpcall"
	"trpc.group/trpc-go/trpc-flow-go/sink/task"
	"trpc.group/trpc-go/trpc-flow-go/telemetry"
	"trpc.group/trpc-go/trpc-flow-go/workflow"
)

// Defaults applied when a request leaves the field empty.
const (
	defaultModel       = "gpt-4o-mini"
	defaultConcurrency = 4
	defaultAppName     = "trpc-flow"
)

// ModelResolver turns a model id into a callable model.
type ModelResolver func(ctx context.Context, modelID string) (model.Model, error)

// Request describes one workflow execution.
type Request struct {
	// WorkflowID selects the workflow to run.
	WorkflowID string `json:"workflowId"`
	// UserID is the caller, checked against workflow visibility.
	UserID string `json:"userId"`
	// Inputs fill the workflow prompt's {{name}} placeholders.
	Inputs map[string]any `json:"inputs,omitempty"`
	// Models is the ordered model id list. Later models override earlier
	// ones during result merging. Empty means the configured default.
	Models []string `json:"models,omitempty"`
	// OutputFormats is the requested format list. Empty falls back to the
	// workflow's declared type.
	OutputFormats []string `json:"outputFormats,omitempty"`
	// OutputNodes is the raw per-node sink configuration, keyed by node id.
	OutputNodes map[string]map[string]any `json:"outputNodes,omitempty"`
	// Connections is the declared adjacency between output nodes.
	Connections output.ConnectionMap `json:"connections,omitempty"`
}

// Response aggregates everything one run produced.
type Response struct {
	// WorkflowID echoes the executed workflow.
	WorkflowID string `json:"workflowId"`
	// ExecutionID identifies this run.
	ExecutionID string `json:"executionId"`
	// Models is the model list the run used.
	Models []string `json:"models"`
	// OutputFormats is the normalized format list the run used.
	OutputFormats []string `json:"outputFormats"`
	// Results is the merged result bag, sink outcome slots included.
	Results output.Bag `json:"results"`
	// DocumentURLs maps document formats to uploaded artifact URLs, with
	// <format>_error sibling keys for failed generations.
	DocumentURLs map[string]string `json:"documentUrls,omitempty"`
	// APIResponses maps api node ids to their HTTP call outcomes.
	APIResponses map[string]any `json:"apiResponses,omitempty"`
}

type options struct {
	prompts      *prompt.Registry
	resolveModel ModelResolver
	documents    *document.Generator
	api          *httpcall.Client
	tasks        *task.Executor
	chats        *chat.Broadcaster
	recorder     recorder.Recorder
	models       []string
	concurrency  int
	appName      string
}

// Option configures the Runner.
type Option func(*options)

// WithPromptRegistry overrides the system prompt registry.
func WithPromptRegistry(registry *prompt.Registry) Option {
	return func(o *options) { o.prompts = registry }
}

// WithModelResolver overrides how model ids resolve to callable models. The
// default consults the provider registry.
func WithModelResolver(resolver ModelResolver) Option {
	return func(o *options) { o.resolveModel = resolver }
}

// WithDocumentGenerator overrides the document sink generator.
func WithDocumentGenerator(generator *document.Generator) Option {
	return func(o *options) { o.documents = generator }
}

// WithHTTPClient overrides the api sink client.
func WithHTTPClient(client *httpcall.Client) Option {
	return func(o *options) { o.api = client }
}

// WithTaskExecutor enables the task sink.
func WithTaskExecutor(executor *task.Executor) Option {
	return func(o *options) { o.tasks = executor }
}

// WithChatBroadcaster enables the chat sink.
func WithChatBroadcaster(broadcaster *chat.Broadcaster) Option {
	return func(o *options) { o.chats = broadcaster }
}

// WithRecorder enables execution audit records. Recording failures are
// logged, never surfaced to the caller.
func WithRecorder(rec recorder.Recorder) Option {
	return func(o *options) { o.recorder = rec }
}

// WithDefaultModels sets the model list used when a request names none.
func WithDefaultModels(models ...string) Option {
	return func(o *options) { o.models = models }
}

// WithConcurrency bounds the model dispatch pool size.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithAppName sets the artifact storage namespace.
func WithAppName(name string) Option {
	return func(o *options) { o.appName = name }
}

// Runner executes workflows end to end.
type Runner struct {
	workflows    workflow.Store
	prompts      *prompt.Registry
	resolveModel ModelResolver
	documents    *document.Generator
	api          *httpcall.Client
	tasks        *task.Executor
	chats        *chat.Broadcaster
	recorder     recorder.Recorder
	models       []string
	concurrency  int
	appName      string
}

// New creates a Runner over the given workflow store and artifact backend.
func New(workflows workflow.Store, artifacts artifact.Service, opts ...Option) *Runner {
	o := &options{
		resolveModel: provider.Model,
		api:          httpcall.NewClient(),
		models:       []string{defaultModel},
		concurrency:  defaultConcurrency,
		appName:      defaultAppName,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.prompts == nil {
		o.prompts = prompt.NewRegistry()
	}
	if o.documents == nil {
		o.documents = document.NewGenerator(artifacts)
	}
	return &Runner{
		workflows:    workflows,
		prompts:      o.prompts,
		resolveModel: o.resolveModel,
		documents:    o.documents,
		api:          o.api,
		tasks:        o.tasks,
		chats:        o.chats,
		recorder:     o.recorder,
		models:       o.models,
		concurrency:  o.concurrency,
		appName:      o.appName,
	}
}

// Run executes one workflow. Per-format and per-sink failures are reported
// inside the response; a returned error means the run itself could not
// start (unknown workflow, denied access, malformed request).
func (r *Runner) Run(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.WorkflowID == "" {
		return nil, errors.New("workflow id is required")
	}
	if req.UserID == "" {
		return nil, errors.New("user id is required")
	}

	ctx, span := telemetry.Tracer.Start(ctx, telemetry.OperationExecuteWorkflow,
		trace.WithAttributes(telemetry.KeyWorkflowID.String(req.WorkflowID)))
	defer span.End()

	wf, err := r.workflows.Get(ctx, req.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("load workflow %s: %w", req.WorkflowID, err)
	}
	if wf.OwnerID != req.UserID && wf.Visibility != workflow.VisibilityPublic {
		return nil, fmt.Errorf("workflow %s: %w", req.WorkflowID, workflow.ErrPermissionDenied)
	}

	userPrompt := workflow.Substitute(wf.Prompt, req.Inputs)

	formats := output.NormalizeAll(req.OutputFormats)
	if len(formats) == 0 && wf.Type != "" {
		formats = output.NormalizeAll([]string{wf.Type})
	}
	if len(formats) == 0 {
		formats = []output.Format{output.FormatJSON}
	}
	models := req.Models
	if len(models) == 0 {
		models = r.models
	}

	executionID := uuid.NewString()
	log.Infof("run %s: workflow=%s models=%v formats=%v",
		executionID, req.WorkflowID, models, formats)

	bag := r.dispatch(ctx, models, formats, userPrompt)
	graph := r.buildGraph(req.OutputNodes, req.Connections, bag)

	formatNames := make([]string, len(formats))
	for i, f := range formats {
		formatNames[i] = f.String()
	}
	response := &Response{
		WorkflowID:    req.WorkflowID,
		ExecutionID:   executionID,
		Models:        models,
		OutputFormats: formatNames,
		Results:       bag,
	}

	sessionInfo := artifact.SessionInfo{
		AppName:     r.appName,
		UserID:      req.UserID,
		ExecutionID: executionID,
	}
	r.runSinks(ctx, graph, formats, bag, sessionInfo, response)

	r.record(ctx, req, response)
	return response, nil
}

// buildGraph validates the raw node map with per-node isolation: one
// malformed node becomes an error entry in the bag instead of failing the
// whole run. Node ids are sorted so error attribution is deterministic.
func (r *Runner) buildGraph(
	raw map[string]map[string]any,
	connections output.ConnectionMap,
	bag output.Bag,
) *output.Graph {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]output.Node, 0, len(ids))
	for _, id := range ids {
		node, err := output.ParseNode(id, raw[id])
		if err != nil {
			log.Warnf("skipping malformed node %s: %v", id, err)
			bag.Set(output.Format("node_"+id), output.Err(err))
			continue
		}
		nodes = append(nodes, node)
	}
	return output.NewGraph(nodes, connections)
}

// record writes the execution audit record. Failures never fail the run.
func (r *Runner) record(ctx context.Context, req *Request, response *Response) {
	if r.recorder == nil {
		return
	}
	rec := &recorder.Record{
		ID:            response.ExecutionID,
		WorkflowID:    response.WorkflowID,
		UserID:        req.UserID,
		Models:        strings.Join(response.Models, ","),
		Inputs:        req.Inputs,
		Results:       response.Results,
		OutputFormats: response.OutputFormats,
		DocumentURLs:  response.DocumentURLs,
		APIResponses:  response.APIResponses,
		CreatedAt:     time.Now(),
	}
	if err := r.recorder.Record(ctx, rec); err != nil {
		log.Errorf("record run %s: %v", response.ExecutionID, err)
	}
}
