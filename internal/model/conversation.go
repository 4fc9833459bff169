// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// user vitals, and the simulated agent roster.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered log of exchanged messages plus the
// transient UI state of a chat: the not-yet-submitted input buffer, the
// in-flight flag, and the currently highlighted simulated agent.
//
// The log is append-only and strictly ordered by insertion; messages are
// never mutated or removed after creation. Conversation itself is not
// synchronized: the conversation service owns all locking.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages, append-only.
	Messages []*Message `json:"messages"`

	// PendingInput is the not-yet-submitted text buffer.
	PendingInput string `json:"-"`

	// Loading is true from an accepted submission until both the gateway
	// call and the agent animation have settled.
	Loading bool `json:"-"`

	// Highlighted is the currently "analyzing" agent, nil outside a send
	// cycle or between animation steps.
	Highlighted *AgentID `json:"-"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the log.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(text string) *Message {
	msg := NewUserMessage(text)
	c.AddMessage(msg)
	return msg
}

// AddModelMessage creates and appends a model message with an attribution.
func (c *Conversation) AddModelMessage(text string, agent AgentID) *Message {
	msg := NewModelMessage(text, agent)
	c.AddMessage(msg)
	return msg
}

// History returns the message log in insertion order. Callers must not
// mutate the returned slice.
func (c *Conversation) History() []*Message {
	return c.Messages
}
