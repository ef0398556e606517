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
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-flow-go/internal/jsonextract"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/model"
	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/telemetry"
)

// Sampling defaults for structured generation.
const (
	dispatchTemperature = 0.2
	dispatchMaxTokens   = 4096
)

// jsonReminder is appended to the user prompt for model families that are
// unreliable about pure-JSON output.
const jsonReminder = "\n\nRespond with JSON only. Your entire response must start with { and end with }."

// dispatchTask is one (model, format) cell of the fan-out.
type dispatchTask struct {
	ctx        context.Context
	runner     *Runner
	modelIndex int
	mdl        model.Model
	modelErr   error
	modelID    string
	format     output.Format
	userPrompt string
	results    []map[output.Format]output.Result
	mu         *sync.Mutex
	wg         *sync.WaitGroup
}

// dispatch runs the model×format cross-product through a bounded goroutine
// pool and reduces the per-cell results into the final bag. Reduction is
// deterministic: for every format, the last model in the configured list
// with a non-error result wins, regardless of completion order.
func (r *Runner) dispatch(
	ctx context.Context,
	modelIDs []string,
	formats []output.Format,
	userPrompt string,
) output.Bag {
	// Models resolve once up front; a resolution failure marks every cell
	// of that model as an error instead of aborting the run.
	models := make([]model.Model, len(modelIDs))
	modelErrs := make([]error, len(modelIDs))
	for i, id := range modelIDs {
		models[i], modelErrs[i] = r.resolveModel(ctx, id)
	}

	results := make([]map[output.Format]output.Result, len(modelIDs))
	for i := range results {
		results[i] = make(map[output.Format]output.Result, len(formats))
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	pool, err := ants.NewPoolWithFunc(r.concurrency, func(args any) {
		task, ok := args.(*dispatchTask)
		if !ok {
			panic("dispatch pool args type error")
		}
		defer task.wg.Done()
		result := task.run()
		task.mu.Lock()
		task.results[task.modelIndex][task.format] = result
		task.mu.Unlock()
	})
	if err != nil {
		// Pool construction only fails on invalid size; fall back to the
		// calling goroutine so the run still completes.
		log.Errorf("dispatch: create pool: %v", err)
	}
	if pool != nil {
		defer pool.Release()
	}

	for modelIndex := range modelIDs {
		for _, format := range formats {
			if format == output.FormatAPI {
				// api marks a pure data sink, it has no generative step.
				continue
			}
			task := &dispatchTask{
				ctx:        ctx,
				runner:     r,
				modelIndex: modelIndex,
				mdl:        models[modelIndex],
				modelErr:   modelErrs[modelIndex],
				modelID:    modelIDs[modelIndex],
				format:     format,
				userPrompt: userPrompt,
				results:    results,
				mu:         &mu,
				wg:         &wg,
			}
			wg.Add(1)
			if pool != nil {
				if err := pool.Invoke(task); err != nil {
					wg.Done()
					mu.Lock()
					results[modelIndex][format] = output.Errf("dispatch %s/%s: %v", task.modelID, format, err)
					mu.Unlock()
				}
			} else {
				result := task.run()
				mu.Lock()
				results[modelIndex][format] = result
				mu.Unlock()
				wg.Done()
			}
		}
	}
	wg.Wait()

	return reduceResults(results, formats)
}

// run executes one (model, format) cell: build the request, call the model,
// extract JSON. Model and parse failures become result errors, never
// panics.
func (t *dispatchTask) run() output.Result {
	ctx, span := telemetry.Tracer.Start(t.ctx,
		fmt.Sprintf("%s %s", telemetry.OperationGenerateContent, t.modelID),
		trace.WithAttributes(
			telemetry.KeyModel.String(t.modelID),
			telemetry.KeyFormat.String(t.format.String()),
		))
	defer span.End()

	if t.modelErr != nil {
		return output.Errf("model %s unavailable: %v", t.modelID, t.modelErr)
	}
	return t.runner.processRequest(ctx, t.mdl, t.modelID, t.format, t.userPrompt)
}

// processRequest is the AI request processor for one (model, format) pair.
func (r *Runner) processRequest(
	ctx context.Context,
	mdl model.Model,
	modelID string,
	format output.Format,
	userPrompt string,
) output.Result {
	systemPrompt := r.prompts.SystemPrompt(format)
	prompt := userPrompt
	if !supportsJSONMode(modelID) {
		prompt += jsonReminder
	}

	temperature := dispatchTemperature
	maxTokens := dispatchMaxTokens
	request := &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(systemPrompt),
			model.NewUserMessage(prompt),
		},
		GenerationConfig: model.GenerationConfig{
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
			JSONOutput:  supportsJSONMode(modelID),
		},
	}

	response, err := mdl.GenerateContent(ctx, request)
	if err != nil {
		return output.Errf("model %s: %v", modelID, err)
	}
	if response == nil {
		return output.Errf("model %s: missing completion", modelID)
	}
	if response.Error != nil {
		return output.Errf("model %s: %s", modelID, response.Error.Message)
	}
	text := strings.TrimSpace(response.Text())
	if text == "" {
		return output.Errf("model %s returned an empty completion for format %s", modelID, format)
	}

	value, err := jsonextract.Extract(text)
	if err != nil {
		return output.Errf("model %s produced unparseable %s output: %v", modelID, format, err)
	}
	return output.Ok(value)
}

// reduceResults folds per-model result tables into the final bag. Every
// requested format always ends up with a slot: the last non-error result in
// model list order, or the last error when no model succeeded.
func reduceResults(results []map[output.Format]output.Result, formats []output.Format) output.Bag {
	bag := make(output.Bag, len(formats))
	for _, format := range formats {
		if format == output.FormatAPI {
			continue
		}
		var final output.Result
		for _, table := range results {
			result, ok := table[format]
			if !ok || !result.Resolved() {
				continue
			}
			if result.Err() == nil {
				final = result
			} else if !final.Resolved() || final.Err() != nil {
				final = result
			}
		}
		if !final.Resolved() {
			final = output.Errf("no model produced a result for format %s", format)
		}
		bag.Set(format, final)
	}
	return bag
}

// supportsJSONMode reports whether the model family reliably honors a
// native JSON output mode. The check is a naming convention, matching how
// model ids encode their family.
func supportsJSONMode(modelID string) bool {
	id := strings.ToLower(modelID)
	for _, prefix := range []string{"gpt-", "o1", "o3", "o4", "gemini", "chatgpt"} {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
