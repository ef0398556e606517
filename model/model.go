//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package model provides the model interface and implementations.
package model

import "context"

// Info describes basic model metadata.
type Info struct {
	// Name is the model id, e.g. "gpt-4o-mini".
	Name string
}

// Model is the interface every model backend implements. Provider failures
// are reported through Response.Error; a returned error means the call
// itself could not be made.
type Model interface {
	// Info returns basic information about the model.
	Info() Info

	// GenerateContent produces one completion for the request.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)
}
