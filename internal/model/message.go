// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat conversation.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the origin of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn of the conversation.
// Fields are unexported so a Message cannot change after creation.
type Message struct {
	id        string
	role      Role
	text      string
	timestamp time.Time
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, text string) *Message {
	return &Message{
		id:        uuid.NewString(),
		role:      role,
		text:      text,
		timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, text)
}

// NewAssistantMessage creates a new assistant message.
// For replies the text is the formatted fragment, not the raw completion.
func NewAssistantMessage(text string) *Message {
	return NewMessage(RoleAssistant, text)
}

// ID returns the message identifier.
func (m *Message) ID() string { return m.id }

// Role returns who authored the message.
func (m *Message) Role() Role { return m.role }

// Text returns the message body.
func (m *Message) Text() string { return m.text }

// Timestamp returns when the message was created.
func (m *Message) Timestamp() time.Time { return m.timestamp }

// IsUser reports whether the message was typed by the user.
func (m *Message) IsUser() bool { return m.role == RoleUser }

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
// A non-positive maxLen yields "".
func (m *Message) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(m.text)
	if len(runes) <= maxLen {
		return m.text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
