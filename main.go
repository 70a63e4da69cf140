// opsdesk - company management console with an AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/opsdesk/internal/cli"
	"github.com/jeranaias/opsdesk/internal/config"
	"github.com/jeranaias/opsdesk/internal/logging"
	"github.com/jeranaias/opsdesk/internal/ui/shell"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cli.ErrorStyle.Render("Error:"), err)
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, "Run 'opsdesk help' for usage.")
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run(argv []string) error {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		return err
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return nil
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return nil
	}

	cfg, path, err := loadConfig(args.ConfigPath)
	if err != nil {
		if cmd != cli.CmdConfig {
			return err
		}
		// config set/init must still work on a broken file
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Default()
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Nop()
	}
	defer logger.Sync()
	config.SetLogger(logger)

	logger.Info("starting",
		zap.String("command", cmd.String()),
		zap.String("version", Version),
		zap.String("config", path),
	)

	env := cli.NewEnv(cfg, path, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case cli.CmdAsk:
		return cli.HandleAsk(ctx, env, args)
	case cli.CmdChat:
		return cli.HandleChat(ctx, env, args)
	case cli.CmdConfig:
		return cli.HandleConfig(env, args)
	default:
		stop()
		return runTUI(env)
	}
}

// loadConfig loads the explicit path when given, else the default location.
// It returns the config and the file path commands should use.
func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); errors.Is(err, os.ErrNotExist) {
			cfg, err := config.LoadDefaults()
			return cfg, explicit, err
		}
		cfg, err := config.LoadFromPath(explicit)
		return cfg, explicit, err
	}

	path, err := config.ConfigPathTOML()
	if err != nil {
		return nil, "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if jsonPath, jerr := config.ConfigPathJSON(); jerr == nil {
			if _, err := os.Stat(jsonPath); err == nil {
				path = jsonPath
			}
		}
	}
	cfg, err := config.Load()
	return cfg, path, err
}

// runTUI starts the full-screen console and reloads the config on change.
func runTUI(env *cli.Env) error {
	ctrl := env.NewController()
	m := shell.New(shell.Options{
		Config:     env.Config,
		Controller: ctrl,
		NewClient:  shell.ClientFactory(env.NewClient),
		Logger:     env.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := os.Stat(filepath.Dir(env.ConfigPath)); err == nil {
		path := env.ConfigPath
		err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
			p.Send(shell.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			env.Logger.Warn("config watch disabled", zap.Error(err))
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	env.Logger.Info("exiting")
	return nil
}
