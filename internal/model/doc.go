// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat conversation.
//
// # Key Types
//
//   - Message: one immutable turn, tagged user or assistant
//   - Conversation: append-only, insertion-ordered history of one chat page
//
// A Conversation lives exactly as long as the page that owns it. Nothing in
// this package is persisted.
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("Hello"))
//	conv.Append(model.NewAssistantMessage("Hi there"))
//	for _, msg := range conv.Messages() {
//	    fmt.Println(msg.Role(), msg.Text())
//	}
package model
