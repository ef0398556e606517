//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/telemetry"
)

// documentFormats are the formats rendered into downloadable artifacts.
var documentFormats = map[output.Format]output.NodeType{
	output.FormatPPT:      output.NodeTypePPT,
	output.FormatDocument: output.NodeTypeDocument,
}

// runSinks executes every sink stage of the run. Each sink is isolated:
// failures land in the response as data and never abort the other sinks.
func (r *Runner) runSinks(
	ctx context.Context,
	graph *output.Graph,
	formats []output.Format,
	bag output.Bag,
	sessionInfo artifact.SessionInfo,
	response *Response,
) {
	for _, format := range formats {
		if _, ok := documentFormats[format]; ok {
			r.runDocumentSink(ctx, graph, format, bag, sessionInfo, response)
		}
	}
	if containsFormat(formats, output.FormatTask) {
		r.runTaskSink(ctx, graph, bag)
	}
	if containsFormat(formats, output.FormatChat) {
		r.runChatSinks(ctx, graph, bag)
	}
	r.runAPISinks(ctx, graph, bag, response)
}

// runDocumentSink renders one document format and uploads the artifact.
func (r *Runner) runDocumentSink(
	ctx context.Context,
	graph *output.Graph,
	format output.Format,
	bag output.Bag,
	sessionInfo artifact.SessionInfo,
	response *Response,
) {
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.OperationExecuteSink,
		trace.WithAttributes(
			telemetry.KeySink.String("document"),
			telemetry.KeyFormat.String(format.String()),
		))
	defer span.End()

	var settings output.DocumentSettings
	if nodes := graph.NodesOfType(documentFormats[format]); len(nodes) > 0 {
		if s, ok := nodes[0].Settings.(output.DocumentSettings); ok {
			settings = s
		}
	}

	result, _ := bag.Get(format)
	url, err := r.documents.Execute(ctx, sessionInfo, format, result, settings)
	if response.DocumentURLs == nil {
		response.DocumentURLs = make(map[string]string)
	}
	if err != nil {
		log.Warnf("document sink %s failed: %v", format, err)
		response.DocumentURLs[format.String()+"_error"] = err.Error()
		return
	}
	response.DocumentURLs[format.String()] = url
}

// runTaskSink turns the task result into created tasks. When no task
// executor is configured the slot records that instead of staying empty.
func (r *Runner) runTaskSink(ctx context.Context, graph *output.Graph, bag output.Bag) {
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.OperationExecuteSink,
		trace.WithAttributes(telemetry.KeySink.String("task")))
	defer span.End()

	if r.tasks == nil {
		bag.Set(output.TaskResultKey, output.Errf("no task service configured"))
		return
	}
	var settings output.TaskSettings
	if nodes := graph.NodesOfType(output.NodeTypeTask); len(nodes) > 0 {
		if s, ok := nodes[0].Settings.(output.TaskSettings); ok {
			settings = s
		}
	}
	result, _ := bag.Get(output.FormatTask)
	outcome := r.tasks.Execute(ctx, settings, result)
	bag.Set(output.TaskResultKey, output.Ok(outcome))
}

// runChatSinks broadcasts the chat result through every chat node. Each
// node writes its own outcome slot so multi-node runs stay attributable.
func (r *Runner) runChatSinks(ctx context.Context, graph *output.Graph, bag output.Bag) {
	nodes := graph.NodesOfType(output.NodeTypeChat)
	for _, node := range nodes {
		ctx, span := telemetry.Tracer.Start(ctx, telemetry.OperationExecuteSink,
			trace.WithAttributes(
				telemetry.KeySink.String("chat"),
				telemetry.KeyNodeID.String(node.ID),
			))
		if r.chats == nil {
			bag.Set(output.ChatResultKey(node.ID), output.Errf("no chat service configured"))
			span.End()
			continue
		}
		settings, ok := node.Settings.(output.ChatSettings)
		if !ok {
			bag.Set(output.ChatResultKey(node.ID), output.Errf("node %s: invalid chat settings", node.ID))
			span.End()
			continue
		}
		outcome := r.chats.Execute(ctx, settings, bag)
		bag.Set(output.ChatResultKey(node.ID), output.Ok(outcome))
		span.End()
	}
	if len(nodes) == 0 && r.chats != nil {
		log.Debugf("chat format requested but no chat node configured")
	}
}

// runAPISinks executes every api node: resolve the body from the node's
// declared upstream, make exactly one HTTP call, record the outcome.
func (r *Runner) runAPISinks(
	ctx context.Context,
	graph *output.Graph,
	bag output.Bag,
	response *Response,
) {
	nodes := graph.NodesOfType(output.NodeTypeAPI)
	if len(nodes) == 0 {
		return
	}
	if response.APIResponses == nil {
		response.APIResponses = make(map[string]any, len(nodes))
	}
	for _, node := range nodes {
		ctx, span := telemetry.Tracer.Start(ctx, telemetry.OperationExecuteSink,
			trace.WithAttributes(
				telemetry.KeySink.String("api"),
				telemetry.KeyNodeID.String(node.ID),
			))
		response.APIResponses[node.ID] = r.runAPINode(ctx, graph, node, bag)
		span.End()
	}
}

func (r *Runner) runAPINode(
	ctx context.Context,
	graph *output.Graph,
	node output.Node,
	bag output.Bag,
) any {
	body, err := graph.ResolveAPIBody(node, bag)
	if err != nil {
		log.Warnf("api node %s: %v", node.ID, err)
		return map[string]any{"error": err.Error()}
	}
	settings, ok := node.Settings.(output.APISettings)
	if !ok {
		return map[string]any{"error": fmt.Sprintf("node %s: invalid api settings", node.ID)}
	}
	resp, err := r.api.Execute(ctx, settings, body)
	if err != nil {
		log.Warnf("api node %s: call failed: %v", node.ID, err)
		return map[string]any{"error": err.Error()}
	}
	return resp
}

func containsFormat(formats []output.Format, want output.Format) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}
