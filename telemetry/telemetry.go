//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides tracing for workflow execution.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry service constants.
const (
	ServiceName    = "trpc-flow-go"
	InstrumentName = "trpc.flow.go"

	OperationExecuteWorkflow = "execute_workflow"
	OperationGenerateContent = "generate_content"
	OperationExecuteSink     = "execute_sink"
)

// Tracer is the tracer used across the engine. It resolves through the
// global provider, so spans are no-ops until Start is called.
var Tracer trace.Tracer = otel.Tracer(InstrumentName)

// Span attribute keys.
var (
	KeyWorkflowID = attribute.Key("flow.workflow.id")
	KeyModel      = attribute.Key("flow.model")
	KeyFormat     = attribute.Key("flow.format")
	KeySink       = attribute.Key("flow.sink")
	KeyNodeID     = attribute.Key("flow.node.id")
)

// options configures Start.
type options struct {
	endpoint string
	insecure bool
}

// Option configures telemetry startup.
type Option func(*options)

// WithEndpoint sets the OTLP HTTP collector endpoint, host:port.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithInsecure disables TLS towards the collector.
func WithInsecure() Option {
	return func(o *options) {
		o.insecure = true
	}
}

// Start installs a tracer provider exporting to an OTLP HTTP collector and
// returns a shutdown function flushing pending spans.
func Start(ctx context.Context, opts ...Option) (func(ctx context.Context) error, error) {
	o := options{endpoint: "localhost:4318"}
	for _, opt := range opts {
		opt(&o)
	}

	exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(o.endpoint)}
	if o.insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer(InstrumentName)

	return provider.Shutdown, nil
}
