// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command sabhactl is the operator CLI: offline CSV imports, schema
// migrations and console tokens.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sabha/internal/platform/config"
	"github.com/taibuivan/sabha/internal/platform/constants"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// environment is resolved lazily so that --help works without a configured shell.
type environment struct {
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
}

func (env *environment) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if env.verbose || cfg.Debug {
		level = slog.LevelDebug
	}
	env.cfg = cfg
	env.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"-ctl"))
	return nil
}

func newRootCommand() *cobra.Command {
	env := &environment{}

	root := &cobra.Command{
		Use:           "sabhactl",
		Short:         "Operator tooling for the Sabha attendance service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load()
		},
	}
	root.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Enable debug logging.")

	root.AddCommand(
		newImportCommand(env),
		newMigrateCommand(env),
		newTokenCommand(env),
	)
	return root
}
