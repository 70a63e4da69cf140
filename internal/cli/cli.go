// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config PATH
	Verbose    bool   // -v, --verbose: debug logging
	JSON       bool   // --json output where supported

	// ask
	Query    string
	Raw      bool // print the HTML fragment
	Markdown bool // render the unformatted answer with glamour
	Timeout  int  // seconds, 0 = from config

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string
}

const usageText = `opsdesk - company management console with an AI assistant

Usage:
  opsdesk [global flags]             Start the console (default)
  opsdesk tui                        Start the console
  opsdesk ask "question" [flags]     Ask a single question
  opsdesk chat                       Line-based chat in the terminal
  opsdesk config [subcommand]        Configuration
  opsdesk version                    Version information
  opsdesk help                       This help

Ask flags:
  --raw                              Print the formatted HTML fragment
  --markdown                         Render the answer as Markdown
  --timeout N                        Request timeout in seconds

Config subcommands:
  opsdesk config show [--json]       Show the effective configuration
  opsdesk config get KEY             Print one value (e.g. gemini.model)
  opsdesk config set KEY VALUE       Change one value in the config file
  opsdesk config path                Print the config file path
  opsdesk config init                Write a default config file

Global flags:
  --config PATH                      Use a specific config file
  -v, --verbose                      Debug logging

Environment:
  OPSDESK_GEMINI_KEY, GEMINI_API_KEY API key
  OPSDESK_GEMINI_MODEL               Model name
  OPSDESK_GEMINI_URL                 API base URL
  OPSDESK_THEME                      light, dark or auto
  OPSDESK_LANG                       tr or en
  OPSDESK_LOG_LEVEL                  debug, info, warn or error
  OPSDESK_HOME                       Config directory (default ~/.opsdesk)

Console keys:
  tab / shift+tab, F1-F3             Switch page
  enter                              Send message
  esc                                Cancel the request in flight
  ctrl+t                             Toggle dark/light theme
  ctrl+q                             Quit
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "opsdesk version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses argv (without the program name).
func Parse(argv []string) (Command, Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, args, err
	}

	if len(remaining) == 0 {
		return CmdTUI, args, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, args, nil

	case "ask", "a":
		if err := parseAskArgs(&args, remaining); err != nil {
			return CmdAsk, args, err
		}
		return CmdAsk, args, nil

	case "chat":
		return CmdChat, args, nil

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args, nil

	case "version", "--version":
		return CmdVersion, args, nil

	case "help", "-h", "--help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, &UsageError{Message: fmt.Sprintf("unknown command %q", cmd)}
	}
}

// parseGlobalFlags extracts global flags and returns the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--json":
			args.JSON = true
		case arg == "--config":
			if i+1 >= len(argv) {
				return nil, args, &UsageError{Message: "--config requires a path"}
			}
			i++
			args.ConfigPath = argv[i]
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args, nil
}

// parseAskArgs parses ask flags and joins positional words into the query.
func parseAskArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining, "raw", "markdown", "md")

	args.Raw = p.BoolFlag("raw")
	args.Markdown = p.BoolFlag("markdown") || p.BoolFlag("md")
	if args.Raw && args.Markdown {
		return &UsageError{Message: "--raw and --markdown are mutually exclusive"}
	}

	if p.HasFlag("timeout") {
		n, err := p.FlagInt("timeout")
		if err != nil || n < 0 {
			return &UsageError{Message: fmt.Sprintf("invalid --timeout %q", p.Flag("timeout"))}
		}
		args.Timeout = n
	}

	args.Query = strings.Join(p.PositionalFrom(0), " ")
	return nil
}

// parseConfigArgs parses config subcommand arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "json")
	if p.BoolFlag("json") {
		args.JSON = true
	}
	args.Subcommand = p.Positional(0)
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
}
