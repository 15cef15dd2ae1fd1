// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sabha/internal/platform/migration"
)

func newMigrateCommand(env *environment) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert schema migrations",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATION_PATH).")

	runner := func() *migration.Runner {
		if path == "" {
			path = env.cfg.MigrationPath
		}
		return migration.NewRunner(env.cfg.DatabaseURL, path, env.logger)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner().Up()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down STEPS",
		Short: "Revert the last STEPS migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("steps must be a number: %w", err)
			}
			return runner().Down(steps)
		},
	})

	return cmd
}
