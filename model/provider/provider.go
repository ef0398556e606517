//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package provider provides a unified interface for constructing model.Model
// instances from different providers.
package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"trpc.group/trpc-go/trpc-flow-go/model"
	"trpc.group/trpc-go/trpc-flow-go/model/gemini"
	"trpc.group/trpc-go/trpc-flow-go/model/openai"
)

func init() {
	Register("openai", openaiProvider)
	Register("gemini", geminiProvider)
}

// Provider builds a model.Model instance for the given model name.
type Provider func(ctx context.Context, modelName string) (model.Model, error)

var (
	providersMu sync.RWMutex                // providersMu guards providers access.
	providers   = make(map[string]Provider) // providers stores provider name to provider mappings.
)

// Register registers a provider by name.
func Register(name string, provider Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = provider
}

// Get returns the provider by name.
func Get(name string) (Provider, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()
	provider, ok := providers[name]
	return provider, ok
}

// Model constructs a model.Model for the given model name, inferring the
// provider from the model naming convention: "gemini-*" models resolve to the
// Gemini provider, everything else to the OpenAI-compatible provider.
func Model(ctx context.Context, modelName string) (model.Model, error) {
	providerName := "openai"
	if strings.HasPrefix(modelName, "gemini") {
		providerName = "gemini"
	}
	provider, ok := Get(providerName)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
	return provider(ctx, modelName)
}

func openaiProvider(_ context.Context, modelName string) (model.Model, error) {
	return openai.New(modelName), nil
}

func geminiProvider(ctx context.Context, modelName string) (model.Model, error) {
	return gemini.New(ctx, modelName)
}
