// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the "Ask the AI" page of the console.
//
// The page shows the conversation top to bottom in a scrollable viewport and
// reads one line of input at a time. Enter hands the text to the assistant
// controller and clears the input; blank input is ignored and left as is.
//
// The network call runs in a tea.Cmd. While it is in flight the page shows a
// spinner and Esc cancels the call, which still produces a fallback answer.
//
// # Files
//
//   - model.go: Model, New, Update and the turn lifecycle
//   - view.go: rendering of the conversation and input area
//   - keys.go: key bindings
//   - messages.go: Bubble Tea message types
//   - cancel.go: mutex-guarded cancel function for the turn in flight
package chat
