// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/ingest"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/metrics"
	pgstore "github.com/taibuivan/sabha/internal/platform/postgres"
)

func newImportCommand(env *environment) *cobra.Command {
	var (
		populationName string
		path           string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV file into one population",
		Long: `
Runs the same pipeline as the upload endpoint against a local file. Nothing is
stored unless the header matches and every row is valid.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			population, ok := attendance.ParsePopulation(populationName)
			if !ok {
				return fmt.Errorf("unknown population %q", populationName)
			}

			ctx := cmd.Context()
			pool, err := pgstore.NewPool(ctx, env.cfg.DatabaseURL, env.logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			recorder := metrics.New()
			directory := reference.NewDirectory(reference.NewPostgresRepository(pool), recorder)
			pipeline := ingest.NewPipeline(directory, attendance.NewPostgresRepository(pool), env.logger, recorder)

			return runImport(ctx, pipeline, population, path, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&populationName, "type", "", "Population (pratinidhi-sabha, prant-pracharak, karyakari-mandal).")
	flags.StringVar(&path, "file", "", "Path of the CSV file.")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// errRejected marks an import that ran to completion but stored nothing.
var errRejected = errors.New("import rejected")

func runImport(ctx context.Context, pipeline *ingest.Pipeline, population attendance.Population, path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	outcome, err := pipeline.Run(ctx, population, file)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	switch {
	case outcome.Mismatch != nil:
		if err := encoder.Encode(outcome.Mismatch); err != nil {
			return err
		}
		return fmt.Errorf("%w: header mismatch", errRejected)
	case outcome.State == ingest.Rejected:
		if err := encoder.Encode(outcome.Errors); err != nil {
			return err
		}
		return fmt.Errorf("%w: %d invalid rows", errRejected, len(outcome.Errors))
	}

	_, err = fmt.Fprintf(out, "imported %d rows into %s\n", outcome.Count, population)
	return err
}
