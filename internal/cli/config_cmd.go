// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - configuration command handler.
//
// Command: config [subcommand]
//
// Subcommands:
//   show [--json]    Effective configuration (file, .env and environment)
//   get KEY          One value in dot notation
//   set KEY VALUE    Change one value in the config file
//   path             Config file path
//   init             Write a default config file
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(env *Env, args Args) error {
	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		return configShow(env, args)
	case "get":
		return configGet(env, args)
	case "set":
		return configSet(env, args)
	case "path":
		fmt.Fprintln(env.Stdout, env.ConfigPath)
		return nil
	case "init":
		return configInit(env)
	default:
		return &UsageError{Message: fmt.Sprintf("unknown config subcommand %q", args.Subcommand)}
	}
}

func configShow(env *Env, args Args) error {
	if args.JSON {
		fmt.Fprintln(env.Stdout, env.Config.String())
		return nil
	}

	fmt.Fprintln(env.Stdout, TitleStyle.Render("opsdesk configuration"))
	fmt.Fprintln(env.Stdout, DimStyle.Render(env.ConfigPath))
	fmt.Fprintln(env.Stdout)
	for _, key := range config.Keys() {
		val, err := env.Config.Get(key)
		if err != nil {
			return &CommandError{Command: "config", Action: "show", Err: err}
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", LabelStyle.Render(key), displayValue(key, val))
	}
	return nil
}

func configGet(env *Env, args Args) error {
	if args.ConfigKey == "" {
		return &UsageError{Message: "config get requires a key, e.g. gemini.model"}
	}
	val, err := env.Config.Get(args.ConfigKey)
	if err != nil {
		return &CommandError{Command: "config", Action: "get", Err: err}
	}
	fmt.Fprintln(env.Stdout, displayValue(args.ConfigKey, val))
	return nil
}

// configSet edits the file on disk. The effective config is not used so
// that values from .env or the environment are never written back.
func configSet(env *Env, args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return &UsageError{Message: "config set requires a key and a value"}
	}

	cfg := config.Default()
	if _, err := os.Stat(env.ConfigPath); err == nil {
		if err := loadFile(cfg, env.ConfigPath); err != nil {
			return &CommandError{Command: "config", Action: "set", Err: err}
		}
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &CommandError{Command: "config", Action: "set", Err: err}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config set %s: %w", args.ConfigKey, err)
	}

	if err := saveFile(cfg, env.ConfigPath); err != nil {
		return &CommandError{Command: "config", Action: "save", Err: err}
	}
	env.Logger.Info("config value changed", zap.String("key", args.ConfigKey))

	val, _ := cfg.Get(args.ConfigKey)
	fmt.Fprintf(env.Stdout, "%s = %s\n", args.ConfigKey, displayValue(args.ConfigKey, val))
	return nil
}

func configInit(env *Env) error {
	if _, err := os.Stat(env.ConfigPath); err == nil {
		return &CommandError{
			Command: "config",
			Action:  "init",
			Err:     fmt.Errorf("%s already exists", env.ConfigPath),
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &CommandError{Command: "config", Action: "init", Err: err}
	}

	if err := saveFile(config.Default(), env.ConfigPath); err != nil {
		return &CommandError{Command: "config", Action: "init", Err: err}
	}
	fmt.Fprintf(env.Stdout, "Wrote %s\n", env.ConfigPath)
	return nil
}

func loadFile(cfg *config.Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func saveFile(cfg *config.Config, path string) error {
	if !strings.HasSuffix(path, ".json") {
		return config.SaveTOML(cfg, path)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}

// displayValue formats a config value, hiding the API key.
func displayValue(key string, val interface{}) string {
	if strings.EqualFold(key, "gemini.api_key") {
		if s, _ := val.(string); s != "" {
			return "[REDACTED]"
		}
		return DimStyle.Render("(not set)")
	}
	if s, ok := val.(string); ok && s == "" {
		return DimStyle.Render("(empty)")
	}
	return fmt.Sprint(val)
}
