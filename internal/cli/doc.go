// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of opsdesk.
//
// # Commands
//
//	opsdesk                      Start the console (default)
//	opsdesk ask "question"       Ask a single question and print the answer
//	opsdesk chat                 Line-based chat in the terminal
//	opsdesk config [subcommand]  Show or edit the configuration
//	opsdesk version              Print version information
//	opsdesk help                 Print usage
//
// Handlers return errors; main prints them and exits with ExitCode(err).
package cli
