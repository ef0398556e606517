//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the chat
// dispatcher.
package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Message is one dispatched chat message.
type Message struct {
	ID        string
	SessionID string
	Content   string
}

// Dispatcher is an in-memory implementation of chat.Dispatcher. It is
// suitable for testing and development environments.
type Dispatcher struct {
	mu       sync.Mutex
	messages []Message
}

// NewDispatcher creates a new in-memory chat dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// SendMessage records the message and returns a generated id.
func (d *Dispatcher) SendMessage(ctx context.Context, sessionID, content string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := uuid.NewString()
	d.messages = append(d.messages, Message{ID: id, SessionID: sessionID, Content: content})
	return id, nil
}

// Messages returns all dispatched messages in order.
func (d *Dispatcher) Messages() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.messages...)
}
