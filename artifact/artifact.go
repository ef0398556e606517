//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package artifact provides the definition and service for generated
// content artifacts.
package artifact

import (
	"context"
	"fmt"
)

// Artifact represents a generated binary such as a rendered document.
type Artifact struct {
	// Data contains the raw bytes (required).
	Data []byte `json:"data,omitempty"`
	// MimeType is the IANA standard MIME type of the data (required).
	MimeType string `json:"mime_type,omitempty"`
	// Name is an optional display name of the artifact.
	Name string `json:"name,omitempty"`
}

// SessionInfo scopes artifact storage to one workflow run.
type SessionInfo struct {
	// AppName is the name of the application.
	AppName string
	// UserID is the ID of the user.
	UserID string
	// ExecutionID is the ID of the workflow run.
	ExecutionID string
}

// ObjectName returns the storage object name for a filename within the
// session: {app_name}/{user_id}/{execution_id}/{filename}.
func (s SessionInfo) ObjectName(filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s", s.AppName, s.UserID, s.ExecutionID, filename)
}

// Service stores generated artifacts durably and resolves their URLs.
type Service interface {
	// SaveArtifact uploads an artifact and returns its durable URL.
	SaveArtifact(ctx context.Context, sessionInfo SessionInfo, filename string, artifact *Artifact) (string, error)

	// LoadArtifact retrieves a previously saved artifact, or nil if it does
	// not exist.
	LoadArtifact(ctx context.Context, sessionInfo SessionInfo, filename string) (*Artifact, error)
}
