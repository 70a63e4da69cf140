// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/assistant"
	"github.com/jeranaias/opsdesk/internal/config"
	"github.com/jeranaias/opsdesk/internal/gemini"
	"github.com/jeranaias/opsdesk/internal/locale"
	"github.com/jeranaias/opsdesk/internal/logging"
)

// ClientFactory builds a completion client from the [gemini] section.
type ClientFactory func(cfg config.GeminiConfig) assistant.Completer

// Env carries what command handlers need from main.
type Env struct {
	Config     *config.Config
	ConfigPath string // file the config was read from, or the default path
	Logger     *zap.Logger
	Stdout     io.Writer
	Stderr     io.Writer
	IsTTY      bool // stdout is a terminal
	NewClient  ClientFactory
}

// NewEnv returns an Env writing to the process streams. It also sets the
// lipgloss color profile so NO_COLOR and FORCE_COLOR apply to CLI output.
func NewEnv(cfg *config.Config, path string, logger *zap.Logger) *Env {
	logger = logging.OrNop(logger)
	lipgloss.SetColorProfile(GetColorProfile())
	return &Env{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTTY:      IsStdoutTTY(),
		NewClient:  GeminiClientFactory(logger, locale.Lookup(cfg.UI.Language).Fallbacks()),
	}
}

// GeminiClientFactory returns a factory for real Gemini clients whose
// GetResponse answers with the given fallbacks.
func GeminiClientFactory(logger *zap.Logger, fallbacks gemini.Fallbacks) ClientFactory {
	return func(cfg config.GeminiConfig) assistant.Completer {
		return gemini.NewClientFromConfig(cfg).
			WithLogger(logger).
			WithFallbacks(fallbacks)
	}
}

// Catalog returns the labels for the configured language.
func (e *Env) Catalog() *locale.Catalog {
	return locale.Lookup(e.Config.UI.Language)
}

// NewController creates an assistant controller over a fresh conversation.
func (e *Env) NewController() *assistant.Controller {
	var client assistant.Completer
	if e.NewClient != nil {
		client = e.NewClient(e.Config.Gemini)
	}
	return assistant.New(nil, client, e.Catalog().Fallbacks(), e.Logger)
}
