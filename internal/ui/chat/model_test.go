// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/gemini"
	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/model"
	"github.com/jeranaias/opsdesk/internal/ui/styles"
)

type fixedCompleter struct {
	text string
	err  error
}

func (f fixedCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

// blockingCompleter waits for cancellation.
type blockingCompleter struct{}

func (blockingCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestModel(c assistant.Completer) Model {
	ctrl := assistant.New(nil, c, gemini.DefaultFallbacks, nil)
	m := New(styles.NewTheme(styles.Light), locale.Lookup("tr"), ctrl, nil)
	m.SetSize(100, 30)
	return m
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// collect executes cmd and flattens batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findReply(t *testing.T, msgs []tea.Msg) ReplyMsg {
	t.Helper()
	for _, msg := range msgs {
		if r, ok := msg.(ReplyMsg); ok {
			return r
		}
	}
	t.Fatal("no ReplyMsg produced")
	return ReplyMsg{}
}

func TestSubmit_HelloScenario(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "**Hi** there:\n* ok"})

	m = typeText(m, "Hello")
	m, cmd := press(m, tea.KeyEnter)

	assert.Equal(t, StateWaiting, m.State())
	assert.Empty(t, m.InputValue())
	assert.True(t, m.Conversation().Pending())
	require.NotNil(t, cmd)

	reply := findReply(t, collect(cmd))
	next, _ := m.Update(reply)
	m = next.(Model)

	assert.Equal(t, StateReady, m.State())
	msgs := m.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role())
	assert.Equal(t, "Hello", msgs[0].Text())
	assert.Equal(t, model.RoleAssistant, msgs[1].Role())
	assert.Equal(t, "Hi there:<br>    • ok", msgs[1].Text())

	view := m.View()
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "Hi there:")
	assert.Contains(t, view, "• ok")
	assert.NotContains(t, view, "<br>")
}

func TestSubmit_BlankInputIsNoop(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "unused"})

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)

	m = typeText(m, "   ")
	m, cmd = press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "   ", m.InputValue())
	assert.Equal(t, 0, m.Conversation().Len())
	assert.Equal(t, StateReady, m.State())
}

func TestSubmit_FallbackOnFailure(t *testing.T) {
	m := newTestModel(fixedCompleter{err: &gemini.APIError{Status: 404, Message: "Not Found"}})

	m = typeText(m, "q")
	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(findReply(t, collect(cmd)))
	m = next.(Model)

	assert.Equal(t, gemini.DefaultFallbacks.Unavailable, m.Conversation().Last().Text())
	assert.Contains(t, m.View(), "Üzgünüm")
}

func TestSubmit_IgnoredWhileWaiting(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "a"})

	m = typeText(m, "first")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	m = typeText(m, "second")
	m, cmd2 := press(m, tea.KeyEnter)
	assert.Nil(t, cmd2)
	assert.Equal(t, "second", m.InputValue())
	assert.Equal(t, 1, m.Conversation().Len())
}

func TestCancel_YieldsFallback(t *testing.T) {
	m := newTestModel(blockingCompleter{})

	m = typeText(m, "slow")
	m, cmd := press(m, tea.KeyEnter)
	require.True(t, m.IsWaiting())

	done := make(chan []tea.Msg, 1)
	go func() { done <- collect(cmd) }()

	m, _ = press(m, tea.KeyEsc)

	var msgs []tea.Msg
	select {
	case msgs = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("turn did not stop after cancel")
	}

	reply := findReply(t, msgs)
	assert.ErrorIs(t, reply.Reply.Err, context.Canceled)

	next, cmd := m.Update(reply)
	m = next.(Model)
	assert.False(t, m.IsWaiting())
	assert.Equal(t, gemini.DefaultFallbacks.Failure, m.Conversation().Last().Text())
	assert.False(t, m.Conversation().Pending())

	completed := collect(cmd)
	require.Len(t, completed, 1)
	assert.True(t, completed[0].(TurnCompletedMsg).Cancelled)
}

func TestStaleReplyIgnored(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "a"})
	next, cmd := m.Update(ReplyMsg{Reply: assistant.Reply{TurnID: "unknown", Text: "x"}})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Conversation().Len())
}

func TestSetThemeAndCatalog(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "a"})
	assert.Contains(t, m.View(), locale.Lookup("tr").ChatTitle)

	m.SetTheme(styles.NewTheme(styles.Dark))
	m.SetCatalog(locale.Lookup("en"))
	assert.True(t, m.theme.IsDark())
	assert.Contains(t, m.View(), "AI Assistant")
}

func TestView_EmptyStateUntilFirstMessage(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "a"})
	assert.Contains(t, m.View(), "Henüz mesaj yok")

	_, err := m.controller.Submit(context.Background(), "Merhaba")
	require.NoError(t, err)
	m.SetSize(100, 30)
	assert.NotContains(t, m.View(), "Henüz mesaj yok")
	assert.Contains(t, m.View(), "Merhaba")
}

func TestBlurIgnoresTyping(t *testing.T) {
	m := newTestModel(fixedCompleter{text: "a"})
	m.Blur()
	m = typeText(m, "x")
	assert.Empty(t, m.InputValue())

	m.Focus()
	m = typeText(m, "x")
	assert.Equal(t, "x", m.InputValue())
}

func TestCancelManager(t *testing.T) {
	cm := newCancelManager()
	assert.False(t, cm.cancel())

	calls := 0
	cm.set(func() { calls++ })
	cm.set(func() { calls += 10 })
	assert.Equal(t, 1, calls)

	assert.True(t, cm.cancel())
	assert.Equal(t, 11, calls)
	assert.False(t, cm.cancel())
	assert.Equal(t, 11, calls)
}
