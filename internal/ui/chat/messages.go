// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/opsdesk/internal/assistant"

// ReplyMsg delivers the result of a turn back to the Update loop.
type ReplyMsg struct {
	Reply assistant.Reply
}

// TurnStartedMsg is emitted when a turn is accepted.
type TurnStartedMsg struct {
	TurnID string
}

// TurnCompletedMsg is emitted after the assistant message is recorded.
type TurnCompletedMsg struct {
	TurnID    string
	Cancelled bool
}
