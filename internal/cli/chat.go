// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - line-based chat command handler.
//
// Command: chat
//
// Each line is one turn. Prompts are sent independently and the history
// lives only for the duration of the session.
//
// Slash commands:
//   /help       Show commands
//   /clear      Forget the conversation
//   /quit, /q   Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/format"
)

// lineReader reads one line of user input.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader opens the terminal line editor. Replaced in tests.
var newLineReader = func() lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

const chatHelp = `Commands:
  /help       Show this help
  /clear      Start a new conversation
  /quit, /q   Exit
`

// HandleChat runs the interactive chat loop until /quit, Ctrl+C or EOF.
func HandleChat(ctx context.Context, env *Env, args Args) error {
	reader := newLineReader()
	defer reader.Close()

	catalog := env.Catalog()
	ctrl := env.NewController()

	fmt.Fprintln(env.Stdout, TitleStyle.Render(catalog.Title+" - "+catalog.ChatTitle))
	fmt.Fprintln(env.Stdout, DimStyle.Render("/help, /quit"))
	fmt.Fprintln(env.Stdout)

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := reader.Prompt(PromptStyle.Render(catalog.You + "> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(env.Stdout)
				return nil
			}
			return &CommandError{Command: "chat", Action: "read input", Err: err}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		reader.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			switch strings.ToLower(input) {
			case "/quit", "/q", "/exit":
				return nil
			case "/help", "/h", "/?":
				fmt.Fprint(env.Stdout, chatHelp)
			case "/clear":
				ctrl = env.NewController()
				fmt.Fprintln(env.Stdout, DimStyle.Render("(new conversation)"))
			default:
				fmt.Fprintf(env.Stderr, "%s unknown command %s\n", ErrorStyle.Render("[Error]"), input)
			}
			continue
		}

		if err := chatTurn(ctx, env, ctrl, input); err != nil {
			fmt.Fprintf(env.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
	}
}

// chatTurn submits one line and prints the assistant message.
func chatTurn(ctx context.Context, env *Env, ctrl *assistant.Controller, input string) error {
	ok, err := ctrl.Submit(ctx, input)
	if err != nil || !ok {
		return err
	}
	last := ctrl.Conversation().Last()
	if last == nil || last.IsUser() {
		return nil
	}

	text := format.Plain(last.Text())
	if env.IsTTY {
		text = format.Terminal(last.Text(), BoldStyle)
	}
	fmt.Fprintf(env.Stdout, "%s %s\n\n", AssistantStyle.Render(env.Catalog().Assistant+":"), text)
	return nil
}
