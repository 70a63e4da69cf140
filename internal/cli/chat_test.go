// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader replays lines, then returns end.
type scriptedReader struct {
	lines   []string
	end     error
	history []string
	closed  bool
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) { r.history = append(r.history, item) }

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func withReader(t *testing.T, r *scriptedReader) {
	t.Helper()
	prev := newLineReader
	newLineReader = func() lineReader { return r }
	t.Cleanup(func() { newLineReader = prev })
}

func TestHandleChat_Turns(t *testing.T) {
	reader := &scriptedReader{lines: []string{"Hello", "   ", "Summary please", "/quit", "never read"}, end: io.EOF}
	withReader(t, reader)

	stub := &stubCompleter{text: "**Hi** there:\n* ok"}
	env, stdout, _ := testEnv(t, stub)

	require.NoError(t, HandleChat(context.Background(), env, Args{}))

	assert.Equal(t, []string{"Hello", "Summary please"}, stub.prompts)
	assert.Contains(t, stdout.String(), "Asistan: Hi there:\n    • ok")
	assert.Equal(t, []string{"Hello", "Summary please", "/quit"}, reader.history)
	assert.Equal(t, []string{"never read"}, reader.lines)
	assert.True(t, reader.closed)
}

func TestHandleChat_ExitsOnAbortAndEOF(t *testing.T) {
	for _, end := range []error{io.EOF, liner.ErrPromptAborted} {
		reader := &scriptedReader{end: end}
		withReader(t, reader)

		env, _, _ := testEnv(t, &stubCompleter{})
		assert.NoError(t, HandleChat(context.Background(), env, Args{}))
	}
}

func TestHandleChat_ReadError(t *testing.T) {
	withReader(t, &scriptedReader{end: errors.New("tty gone")})
	env, _, _ := testEnv(t, &stubCompleter{})

	err := HandleChat(context.Background(), env, Args{})
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "chat", cmdErr.Command)
}

func TestHandleChat_SlashCommands(t *testing.T) {
	withReader(t, &scriptedReader{lines: []string{"/help", "/bogus", "/clear", "/q"}})
	env, stdout, stderr := testEnv(t, &stubCompleter{})

	require.NoError(t, HandleChat(context.Background(), env, Args{}))
	assert.Contains(t, stdout.String(), "/quit, /q")
	assert.Contains(t, stderr.String(), "unknown command /bogus")
}

func TestHandleChat_FallbackShown(t *testing.T) {
	withReader(t, &scriptedReader{lines: []string{"Hello"}, end: io.EOF})
	env, stdout, _ := testEnv(t, &stubCompleter{err: errors.New("boom")})
	env.Config.UI.Language = "en"

	require.NoError(t, HandleChat(context.Background(), env, Args{}))
	assert.Contains(t, stdout.String(), "Sorry, an error occurred.")
}

func TestHandleChat_CancelledContext(t *testing.T) {
	withReader(t, &scriptedReader{lines: []string{"Hello"}})
	env, _, _ := testEnv(t, &stubCompleter{text: "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, HandleChat(ctx, env, Args{}))
}
