//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the artifact service.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"trpc.group/trpc-go/trpc-flow-go/artifact"
)

// Service is an in-memory implementation of the artifact service. It is
// suitable for testing and development environments.
type Service struct {
	// artifacts stores artifacts by object name.
	artifacts map[string]*artifact.Artifact
	// mutex protects concurrent access to the artifacts map.
	mutex sync.RWMutex
}

// NewService creates a new in-memory artifact service.
func NewService() *Service {
	return &Service{
		artifacts: make(map[string]*artifact.Artifact),
	}
}

// SaveArtifact saves an artifact to the in-memory storage and returns a
// memory:// URL identifying it.
func (s *Service) SaveArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, art *artifact.Artifact) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	objectName := sessionInfo.ObjectName(filename)
	s.artifacts[objectName] = art
	return fmt.Sprintf("memory://%s", objectName), nil
}

// LoadArtifact gets an artifact from the in-memory storage.
func (s *Service) LoadArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string) (*artifact.Artifact, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	art, ok := s.artifacts[sessionInfo.ObjectName(filename)]
	if !ok {
		return nil, nil
	}
	return art, nil
}
