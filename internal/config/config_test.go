// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// isolate points the config directory at a temp dir and clears the
// environment variables that would otherwise leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("OPSDESK_HOME", dir)
	for _, key := range []string{
		"OPSDESK_GEMINI_KEY", "GEMINI_API_KEY", "OPSDESK_GEMINI_MODEL",
		"OPSDESK_GEMINI_URL", "OPSDESK_THEME", "OPSDESK_LANG", "OPSDESK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Gemini.BaseURL, cfg.Gemini.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "tr", cfg.UI.Language)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[gemini]
api_key = "file-key"
model = "gemini-pro"
timeout_secs = 0

[ui]
theme = "Dark"
language = "en"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, time.Duration(0), cfg.Gemini.Timeout(), "explicit zero means no timeout")
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.Equal(t, "info", cfg.Log.Level, "absent keys keep defaults")
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"ui": {"theme": "auto"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[gemini]\napi_key = \"file-key\"\n")
	t.Setenv("GEMINI_API_KEY", "generic-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "generic-key", cfg.Gemini.APIKey)

	t.Setenv("OPSDESK_GEMINI_KEY", "specific-key")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "specific-key", cfg.Gemini.APIKey)
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "OPSDESK_GEMINI_MODEL=from-dotenv\nOPSDESK_LANG=en\n")
	t.Setenv("OPSDESK_LANG", "tr")
	t.Cleanup(func() { os.Unsetenv("OPSDESK_GEMINI_MODEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Gemini.Model)
	assert.Equal(t, "tr", cfg.UI.Language)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[gemini]
base_url = "ftp://example"
timeout_secs = -1

[ui]
theme = "neon"
`)

	_, err := Load()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"gemini.base_url", "gemini.timeout_secs", "ui.theme"}, fields)
}

func TestLoadTOML_FixesPermissions(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0644))
	require.NoError(t, os.Chmod(path, 0644))

	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries := logs.FilterMessage("tightened config file permissions").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "config", entries[0].LoggerName)
	assert.Equal(t, path, entries[0].ContextMap()["path"])
	assert.Equal(t, "644", entries[0].ContextMap()["was"])
}

func TestLoadTOML_PermissionWarningGoesToLogger(t *testing.T) {
	dir := isolate(t)

	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	err := LoadTOML(Default(), filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("could not secure config file permissions").Len())
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := Default()
	cfg.Gemini.Model = "gemini-2.0-flash"
	cfg.UI.Language = "en"
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", loaded.Gemini.Model)
	assert.Equal(t, "en", loaded.UI.Language)
}

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("ui.theme", "dark"))
	require.NoError(t, cfg.Set("gemini.timeout_secs", "15"))
	require.NoError(t, cfg.Set("gemini.api_key", "k"))

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, 15, cfg.Gemini.TimeoutSecs)
	assert.Equal(t, "k", cfg.Gemini.APIKey)

	_, err = cfg.Get("ui.nope")
	assert.Error(t, err)
	_, err = cfg.Get("ui.theme.deeper")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("gemini.timeout_secs", "soon"))
	assert.Error(t, cfg.Set("", "x"))
}

func TestKeys_AllResolvable(t *testing.T) {
	cfg := Default()
	for _, key := range Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "super-secret"

	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.True(t, strings.Contains(s, "[REDACTED]"))
	assert.Equal(t, "super-secret", cfg.Gemini.APIKey, "String must not modify the config")
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	err := WatchWithDebounce(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	require.NoError(t, err)

	writeFile(t, path, "[ui]\ntheme = \"dark\"\n")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "dark", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
