//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package httpcall executes API sink nodes: it posts an upstream node's
// resolved data to the endpoint described by the node settings.
package httpcall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 1 << 20 // 1 MiB
)

// Response describes the outcome of one API sink call.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"status_code"`
	// Status is the HTTP status line.
	Status string `json:"status"`
	// Body is the decoded JSON response body, or the raw text when the
	// endpoint did not return JSON.
	Body any `json:"body,omitempty"`
}

// options configures the Client.
type options struct {
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*options)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// Client performs API sink calls.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an API sink client.
func NewClient(opts ...Option) *Client {
	o := options{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{httpClient: o.httpClient}
}

// Execute performs the HTTP call described by the node settings with the
// resolved upstream data as JSON body. GET requests carry no body.
func (c *Client) Execute(ctx context.Context, settings output.APISettings, body any) (*Response, error) {
	var reader io.Reader
	if body != nil && settings.Method != http.MethodGet {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, settings.Method, settings.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range settings.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", settings.Method, settings.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	var decoded any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &decoded); err == nil {
			result.Body = decoded
		} else {
			result.Body = string(data)
		}
	}
	return result, nil
}
