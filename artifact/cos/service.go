//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package cos provides a Tencent Cloud Object Storage (COS) implementation
// of the artifact service.
//
// Authentication:
// The service requires COS credentials which can be provided via:
// - Environment variables: COS_SECRETID and COS_SECRETKEY (recommended)
// - Option functions: WithSecretID() and WithSecretKey()
package cos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
)

const defaultTimeout = 60 * time.Second

// options contains configuration for the COS artifact service.
type options struct {
	secretID   string
	secretKey  string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures the COS artifact service.
type Option func(*options)

// WithSecretID sets the COS secret id.
func WithSecretID(secretID string) Option {
	return func(o *options) {
		o.secretID = secretID
	}
}

// WithSecretKey sets the COS secret key.
func WithSecretKey(secretKey string) Option {
	return func(o *options) {
		o.secretKey = secretKey
	}
}

// WithTimeout sets the HTTP timeout for COS requests.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// Service is a Tencent Cloud Object Storage implementation of the artifact
// service.
type Service struct {
	cosClient *cos.Client
	bucketURL string
}

// NewService creates a new COS artifact service for the given bucket URL,
// e.g. "https://bucket.cos.region.myqcloud.com".
func NewService(bucketURL string, opts ...Option) *Service {
	o := &options{
		timeout:   defaultTimeout,
		secretID:  os.Getenv("COS_SECRETID"),
		secretKey: os.Getenv("COS_SECRETKEY"),
	}
	for _, opt := range opts {
		opt(o)
	}

	u, _ := url.Parse(bucketURL)
	b := &cos.BaseURL{BucketURL: u}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: o.timeout,
			Transport: &cos.AuthorizationTransport{
				SecretID:  o.secretID,
				SecretKey: o.secretKey,
			},
		}
	}

	return &Service{
		cosClient: cos.NewClient(b, httpClient),
		bucketURL: bucketURL,
	}
}

// SaveArtifact uploads an artifact to COS and returns its object URL.
func (s *Service) SaveArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, art *artifact.Artifact) (string, error) {
	objectName := sessionInfo.ObjectName(filename)

	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: art.MimeType,
		},
	}
	if _, err := s.cosClient.Object.Put(ctx, objectName, bytes.NewReader(art.Data), opt); err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.bucketURL, objectName), nil
}

// LoadArtifact downloads an artifact from COS, or returns nil if it does
// not exist.
func (s *Service) LoadArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string) (*artifact.Artifact, error) {
	objectName := sessionInfo.ObjectName(filename)

	resp, err := s.cosClient.Object.Get(ctx, objectName, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to download artifact: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact data: %w", err)
	}
	return &artifact.Artifact{
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
		Name:     filename,
	}, nil
}
