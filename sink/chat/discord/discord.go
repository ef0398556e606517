//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package discord provides a Discord-backed implementation of the chat sink
// dispatcher. Chat session ids map to Discord channel ids.
package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher delivers chat sink messages through a Discord bot.
type Dispatcher struct {
	session *discordgo.Session
}

// NewDispatcher creates a dispatcher authenticated with the given bot token.
func NewDispatcher(token string) (*Dispatcher, error) {
	if token == "" {
		return nil, errors.New("discord bot token is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Dispatcher{session: session}, nil
}

// SendMessage implements the chat.Dispatcher interface.
func (d *Dispatcher) SendMessage(ctx context.Context, sessionID, content string) (string, error) {
	message, err := d.session.ChannelMessageSend(sessionID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send to channel %s: %w", sessionID, err)
	}
	return message.ID, nil
}
