// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/opsdesk/internal/config"
)

func TestNew_WritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Log.File = filepath.Join(dir, "logs", "opsdesk.log")
	cfg.Log.Level = "debug"

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Debug("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}

func TestNewFile_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewFile(path, "warn")
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := Nop()
	assert.Same(t, l, OrNop(l))
}
