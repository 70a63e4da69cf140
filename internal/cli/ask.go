// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - single question command handler.
//
// Command: ask [question]
//
// Examples:
//   opsdesk ask "Bu ayın satış özetini çıkar"
//   opsdesk ask --raw "Summarize the weekly report"
//   opsdesk ask --markdown --timeout 30 "List open tasks"
//   opsdesk ask --json "Hello"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/format"
)

// AskResult is the --json output of the ask command.
type AskResult struct {
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Fragment  string `json:"fragment"`
	Outcome   string `json:"outcome"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// HandleAsk runs one synchronous turn and prints the answer.
// A remote failure is not an error: the fallback text is printed instead.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return &UsageError{Message: "ask requires a question, e.g. opsdesk ask \"Hello\""}
	}

	if args.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(args.Timeout)*time.Second)
		defer cancel()
	}

	ctrl := env.NewController()
	turn, err := ctrl.Begin(query)
	if err != nil {
		return &CommandError{Command: "ask", Action: "start turn", Err: err}
	}
	reply := turn.Run(ctx)
	if _, err := ctrl.Complete(reply); err != nil {
		return &CommandError{Command: "ask", Action: "record reply", Err: err}
	}

	env.Logger.Debug("ask completed",
		zap.String("outcome", reply.Outcome.String()),
		zap.Duration("elapsed", reply.Elapsed),
	)

	if args.JSON {
		return writeAskJSON(env, query, reply)
	}

	fmt.Fprintln(env.Stdout, renderAnswer(env, args, reply))
	return nil
}

// renderAnswer picks the output form for a reply.
func renderAnswer(env *Env, args Args, reply assistant.Reply) string {
	switch {
	case args.Raw:
		return reply.Text
	case args.Markdown:
		return strings.TrimRight(renderMarkdown(reply.Raw, markdownStyle(env)), "\n")
	case env.IsTTY:
		return format.Terminal(reply.Text, BoldStyle)
	default:
		return format.Plain(reply.Text)
	}
}

func writeAskJSON(env *Env, query string, reply assistant.Reply) error {
	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(AskResult{
		Prompt:    query,
		Response:  reply.Raw,
		Fragment:  reply.Text,
		Outcome:   reply.Outcome.String(),
		ElapsedMs: reply.Elapsed.Milliseconds(),
	})
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownStyle returns the glamour standard style for the environment.
func markdownStyle(env *Env) string {
	if !env.IsTTY {
		return "notty"
	}
	if env.Config != nil && strings.EqualFold(env.Config.UI.Theme, "light") {
		return "light"
	}
	return "dark"
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content, style string) string {
	width := DefaultTerminalWidth
	if style != "notty" {
		width = GetTerminalWidth()
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
