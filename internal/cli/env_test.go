// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/config"
	"github.com/jeranaias/opsdesk/internal/gemini"
	"github.com/jeranaias/opsdesk/internal/locale"
)

// stubCompleter returns a fixed answer or error and records prompts.
type stubCompleter struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (s *stubCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, s.err
}

// testEnv returns an Env writing to buffers and using the given client.
func testEnv(t *testing.T, client assistant.Completer) (*Env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := config.Default()
	env := &Env{
		Config:     cfg,
		ConfigPath: t.TempDir() + "/config.toml",
		Logger:     zap.NewNop(),
		Stdout:     &stdout,
		Stderr:     &stderr,
		NewClient: func(config.GeminiConfig) assistant.Completer {
			return client
		},
	}
	return env, &stdout, &stderr
}

func restoreColorProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestColorsEnabled_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, ColorsEnabled())
	assert.Equal(t, termenv.Ascii, GetColorProfile())

	t.Setenv("NO_COLOR", "")
	assert.True(t, ColorsEnabled())
	assert.NotEqual(t, termenv.Ascii, GetColorProfile())
}

func TestNewEnv_AppliesColorProfile(t *testing.T) {
	restoreColorProfile(t)

	t.Setenv("FORCE_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	env := NewEnv(config.Default(), "config.toml", nil)
	require.NotNil(t, env.NewClient)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
	assert.Equal(t, "opsdesk> ", PromptStyle.Render("opsdesk> "))

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "1")
	NewEnv(config.Default(), "config.toml", nil)
	assert.NotEqual(t, termenv.Ascii, lipgloss.ColorProfile())
}

func TestGeminiClientFactory_UsesFallbacks(t *testing.T) {
	en := locale.Lookup("en").Fallbacks()
	client, ok := GeminiClientFactory(nil, en)(config.Default().Gemini).(*gemini.Client)
	require.True(t, ok)

	assert.False(t, client.IsConfigured())
	assert.Equal(t, en.Failure, client.GetResponse(context.Background(), "Hello"))
}

func TestNewEnv_ClientFollowsLanguage(t *testing.T) {
	restoreColorProfile(t)

	cfg := config.Default()
	cfg.UI.Language = "en"
	env := NewEnv(cfg, "config.toml", nil)

	client, ok := env.NewClient(cfg.Gemini).(*gemini.Client)
	require.True(t, ok)
	assert.Equal(t, "Sorry, an error occurred.", client.GetResponse(context.Background(), "Hello"))
}
