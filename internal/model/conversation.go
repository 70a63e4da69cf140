// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered history of one chat session.
// Insertion order is chronological order. Messages are never removed or edited.
//
// A Conversation is safe for concurrent use: the request goroutine and the UI
// loop may both read it while a turn is in flight.
type Conversation struct {
	mu       sync.RWMutex
	id       string
	messages []*Message
}

// NewConversation creates a new empty conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		id:       uuid.NewString(),
		messages: make([]*Message, 0),
	}
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string { return c.id }

// Append adds a message at the end of the conversation. Nil messages are ignored.
func (c *Conversation) Append(msg *Message) {
	if msg == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a snapshot of the messages in insertion order.
// The returned slice may be modified by the caller without affecting c.
func (c *Conversation) Messages() []*Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the most recent message, or nil if the conversation is empty.
func (c *Conversation) Last() *Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// Pending reports whether the newest message is a user turn that has not
// been answered yet.
func (c *Conversation) Pending() bool {
	last := c.Last()
	return last != nil && last.IsUser()
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return c.Len() == 0
}
