// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/opsdesk/internal/format"
	"github.com/jeranaias/opsdesk/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.PageTitle.Render(m.catalog.ChatTitle))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.theme.InputBox.Width(m.inputBoxWidth()).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// updateViewport re-renders the conversation and scrolls to the newest message.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	conv := m.controller.Conversation()
	if conv.IsEmpty() {
		return m.theme.Empty.Render(m.catalog.EmptyChat)
	}
	msgs := conv.Messages()

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one message: a label line and the wrapped body.
func (m Model) renderMessage(msg *model.Message) string {
	width := m.bubbleWidth()
	stamp := m.theme.Timestamp.Render(msg.Timestamp().Format("15:04"))

	if msg.IsUser() {
		label := m.theme.UserLabel.Render(m.catalog.You)
		body := m.theme.UserBubble.Width(width).Render(msg.Text())
		return lipgloss.JoinVertical(lipgloss.Left, label+" "+stamp, body)
	}

	label := m.theme.AssistantLabel.Render(m.catalog.Assistant)
	text := format.Terminal(msg.Text(), m.theme.Bold)
	body := m.theme.AssistantBubble.Width(width).Render(text)
	return lipgloss.JoinVertical(lipgloss.Left, label+" "+stamp, body)
}

func (m Model) renderStatus() string {
	if m.state != StateWaiting {
		return ""
	}
	elapsed := time.Since(m.started).Round(time.Second)
	return fmt.Sprintf("%s %s %s  %s",
		m.spinner.View(),
		m.theme.ThinkingText.Render(m.catalog.Thinking),
		m.theme.Timestamp.Render(elapsed.String()),
		m.theme.Help.Render(m.catalog.CancelHint),
	)
}

func (m Model) renderHelp() string {
	parts := []string{m.catalog.SendHint, "pgup/pgdn"}
	if m.state == StateWaiting {
		parts = append(parts, m.catalog.CancelHint)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}

func (m Model) bubbleWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) inputBoxWidth() int {
	w := m.width - 2
	if w < 12 {
		w = 12
	}
	return w
}
