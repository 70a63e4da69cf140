// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// SetLogger sets the logger for warnings raised while loading files.
// Loading may run on the watcher goroutine while the console owns the
// terminal, so nothing in this package writes to stderr. Nil discards.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l.Named("config")
}

func currentLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete opsdesk configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Gemini (generative-language API) configuration
	Gemini GeminiConfig `toml:"gemini" json:"gemini"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// GeminiConfig contains the remote completion client settings.
type GeminiConfig struct {
	// APIKey is the generative-language API credential
	APIKey string `toml:"api_key" json:"api_key"`
	// BaseURL is the API root, without the /models/... suffix
	BaseURL string `toml:"base_url" json:"base_url"`
	// Model is the model name used in the generateContent path
	Model string `toml:"model" json:"model"`
	// TimeoutSecs bounds a single request. 0 waits indefinitely.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerMinute spaces outgoing requests. 0 disables the limiter.
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "light", "dark", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Language selects labels and fallback messages: "tr", "en"
	Language string `toml:"language" json:"language"`
}

// LogConfig contains diagnostic log settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// File is the log file path (empty = ~/.opsdesk/opsdesk.log)
	File string `toml:"file" json:"file"`
}

// Timeout returns the request timeout as a duration.
func (g GeminiConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 0
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Gemini: GeminiConfig{
			APIKey:            "",
			BaseURL:           "https://generativelanguage.googleapis.com/v1beta",
			Model:             "gemini-1.5-flash",
			TimeoutSecs:       60,
			RequestsPerMinute: 0,
		},
		UI: UIConfig{
			Theme:    "light",
			Language: "tr",
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the opsdesk configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("OPSDESK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".opsdesk"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the log file path, resolving the default location.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "opsdesk.log"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files hold the API key and must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
		currentLogger().Warn("tightened config file permissions",
			zap.String("path", path),
			zap.String("was", fmt.Sprintf("%o", mode)),
		)
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// .env files and environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	return LoadDefaults()
}

// LoadDefaults returns the defaults with .env files and environment
// overrides applied, for when no config file exists.
func LoadDefaults() (*Config, error) {
	cfg := Default()
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies .env files, environment overrides, defaults and validation.
func finish(cfg *Config) error {
	if err := LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		currentLogger().Warn("could not secure config file permissions", zap.String("path", path), zap.Error(err))
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		currentLogger().Warn("could not secure config file permissions", zap.String("path", path), zap.Error(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadDotEnv loads .env from the working directory and from the config
// directory. Variables already present in the environment are kept.
// Missing files are not an error.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if err := godotenv.Load(path); err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// SetDefaults fills in any missing string values with defaults.
// Numeric fields are left alone: zero is meaningful for both of them.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = defaults.Gemini.BaseURL
	}
	c.Gemini.BaseURL = strings.TrimSuffix(c.Gemini.BaseURL, "/")
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaults.Gemini.Model
	}
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.Language == "" {
		c.UI.Language = defaults.UI.Language
	}
	c.UI.Language = strings.ToLower(c.UI.Language)

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# opsdesk configuration file")
	fmt.Fprintln(file, "# The API key may also come from OPSDESK_GEMINI_KEY or GEMINI_API_KEY.")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"light": true, "dark": true, "auto": true}
	validLanguages = map[string]bool{"tr": true, "en": true}
	validLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Gemini.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Gemini.BaseURL),
		})
	}
	if strings.ContainsAny(c.Gemini.Model, "/?# ") {
		errs = append(errs, ValidationError{
			Field:   "gemini.model",
			Message: fmt.Sprintf("invalid model name '%s'", c.Gemini.Model),
		})
	}
	if c.Gemini.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "gemini.timeout_secs",
			Message: "must be 0 (no timeout) or positive",
		})
	}
	if c.Gemini.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "gemini.requests_per_minute",
			Message: "must be 0 (unlimited) or positive",
		})
	}
	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: light, dark, auto", c.UI.Theme),
		})
	}
	if !validLanguages[c.UI.Language] {
		errs = append(errs, ValidationError{
			Field:   "ui.language",
			Message: fmt.Sprintf("invalid language '%s', must be one of: tr, en", c.UI.Language),
		})
	}
	if !validLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - OPSDESK_GEMINI_KEY: overrides gemini.api_key
//   - GEMINI_API_KEY: overrides gemini.api_key when OPSDESK_GEMINI_KEY is unset
//   - OPSDESK_GEMINI_MODEL: overrides gemini.model
//   - OPSDESK_GEMINI_URL: overrides gemini.base_url
//   - OPSDESK_THEME: overrides ui.theme
//   - OPSDESK_LANG: overrides ui.language
//   - OPSDESK_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPSDESK_GEMINI_KEY"); key != "" {
		c.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}

	if model := os.Getenv("OPSDESK_GEMINI_MODEL"); model != "" {
		c.Gemini.Model = model
	}

	if u := os.Getenv("OPSDESK_GEMINI_URL"); u != "" {
		c.Gemini.BaseURL = u
	}

	if theme := os.Getenv("OPSDESK_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if lang := os.Getenv("OPSDESK_LANG"); lang != "" {
		c.UI.Language = lang
	}

	if level := os.Getenv("OPSDESK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "gemini.model").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
// String values are converted to the field type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct tree following a dotted key.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %w", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns all configuration keys in dot notation.
func Keys() []string {
	return []string{
		"version",
		"gemini.api_key",
		"gemini.base_url",
		"gemini.model",
		"gemini.timeout_secs",
		"gemini.requests_per_minute",
		"ui.theme",
		"ui.language",
		"log.level",
		"log.file",
	}
}

// =============================================================================
// CLONE / STRING
// =============================================================================

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a JSON representation of the config with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
