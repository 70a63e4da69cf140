// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_Fields(t *testing.T) {
	msg := NewUserMessage("Hello")

	assert.NotEmpty(t, msg.ID())
	assert.Equal(t, RoleUser, msg.Role())
	assert.Equal(t, "Hello", msg.Text())
	assert.False(t, msg.Timestamp().IsZero())
	assert.True(t, msg.IsUser())

	reply := NewAssistantMessage("Hi")
	assert.Equal(t, RoleAssistant, reply.Role())
	assert.False(t, reply.IsUser())
	assert.NotEqual(t, msg.ID(), reply.ID())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "assistant", RoleAssistant.String())
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("Günaydın dünya")
	assert.Equal(t, "Günaydın dünya", msg.Preview(50))
	assert.Equal(t, "Günay...", msg.Preview(8))
	assert.Equal(t, "Gü", msg.Preview(2))
	assert.Equal(t, "", msg.Preview(0))
	assert.Equal(t, "", msg.Preview(-1))
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendKeepsOrder(t *testing.T) {
	conv := NewConversation()
	require.True(t, conv.IsEmpty())
	require.Nil(t, conv.Last())

	conv.Append(NewUserMessage("one"))
	conv.Append(NewAssistantMessage("two"))
	conv.Append(NewUserMessage("three"))
	conv.Append(nil)

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text())
	assert.Equal(t, "two", msgs[1].Text())
	assert.Equal(t, "three", msgs[2].Text())
	assert.Equal(t, "three", conv.Last().Text())
}

func TestConversation_MessagesIsSnapshot(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("a"))

	snapshot := conv.Messages()
	snapshot[0] = NewUserMessage("tampered")

	assert.Equal(t, 1, conv.Len())
	assert.Equal(t, "a", conv.Messages()[0].Text())
}

func TestConversation_Pending(t *testing.T) {
	conv := NewConversation()
	assert.False(t, conv.Pending())

	conv.Append(NewUserMessage("question"))
	assert.True(t, conv.Pending())

	conv.Append(NewAssistantMessage("answer"))
	assert.False(t, conv.Pending())
}

func TestConversation_ConcurrentAccess(t *testing.T) {
	conv := NewConversation()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conv.Append(NewUserMessage("x"))
		}()
		go func() {
			defer wg.Done()
			_ = conv.Messages()
			_ = conv.Pending()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, conv.Len())
}
