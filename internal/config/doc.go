// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for opsdesk.
//
// Configuration file locations (in order of precedence):
//   - ~/.opsdesk/config.toml
//   - ~/.opsdesk/config.json
//   - Built-in defaults
//
// The directory can be moved with OPSDESK_HOME. After the file is read, a
// .env file in the working directory or config directory is loaded (it never
// overrides variables already set), and environment overrides are applied.
//
// The Gemini credential is never compiled in: it comes from gemini.api_key,
// OPSDESK_GEMINI_KEY or GEMINI_API_KEY.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	stop, err := config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
