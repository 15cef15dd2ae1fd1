// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/metrics"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

// # States

// State is a step of one upload.
type State int

const (
	Streaming State = iota
	HeaderChecked
	Validating
	Committing
	Done
	Rejected
)

var stateNames = [...]string{"streaming", "header_checked", "validating", "committing", "done", "rejected"}

// String implements [fmt.Stringer].
func (state State) String() string {
	if int(state) < len(stateNames) {
		return stateNames[state]
	}
	return fmt.Sprintf("state(%d)", int(state))
}

// # Outcome

// Outcome is the result of a finished upload. Exactly one of Mismatch and
// Errors is set when State is [Rejected].
type Outcome struct {
	State    State
	Count    int
	Mismatch *HeaderMismatch
	Errors   []RowIssues
}

// # Pipeline

// Pipeline runs uploads for every population over shared collaborators.
type Pipeline struct {
	directory *reference.Directory
	store     attendance.Inserter
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewPipeline creates a new ingestion [Pipeline].
func NewPipeline(directory *reference.Directory, store attendance.Inserter, logger *slog.Logger, recorder *metrics.Metrics) *Pipeline {
	return &Pipeline{directory: directory, store: store, logger: logger, metrics: recorder}
}

/*
Run ingests one CSV payload into a population.

Description: The header is checked before any data row is read; a mismatch
stops the scan. Every row is then validated. Rows are only inserted when none
has an issue, one at a time and in file order, so an interrupted commit leaves
a prefix of the file behind.

Parameters:
  - population: attendance.Population
  - payload: io.Reader (CSV, header line first)

Returns:
  - *Outcome: Done with Count, or Rejected with the mismatch or row issues
  - error: Unreadable payload, reference store failures, or insert failures
*/
func (pipeline *Pipeline) Run(ctx context.Context, population attendance.Population, payload io.Reader) (*Outcome, error) {
	populationSchema := population.Schema()
	logger := pipeline.logger.With(slog.String("population", population.String()))

	outcome, err := pipeline.run(ctx, population, populationSchema, payload, logger)
	if err != nil {
		pipeline.metrics.Upload(population.String(), "failed", 0)
		return nil, err
	}

	switch {
	case outcome.Mismatch != nil:
		pipeline.metrics.Upload(population.String(), "header_mismatch", 0)
	case outcome.State == Rejected:
		pipeline.metrics.Upload(population.String(), "invalid", 0)
	default:
		pipeline.metrics.Upload(population.String(), "ok", outcome.Count)
	}
	return outcome, nil
}

func (pipeline *Pipeline) run(
	ctx context.Context,
	population attendance.Population,
	populationSchema attendance.Schema,
	payload io.Reader,
	logger *slog.Logger,
) (outcome *Outcome, err error) {
	state := Streaming
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "ingest_failed", slog.String("state", state.String()), slog.String("error", err.Error()))
		}
	}()

	scanner := NewScanner(payload)

	// ── 1. Streaming: header contract ─────────────────────────────────────
	headers, err := scanner.Header()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if mismatch := CheckHeaders(populationSchema, headers); mismatch != nil {
		logger.WarnContext(ctx, "ingest_rejected_headers",
			slog.Any("missing", mismatch.Missing),
			slog.Any("extra", mismatch.Extra),
		)
		return &Outcome{State: Rejected, Mismatch: mismatch}, nil
	}

	// ── 2. Header checked: read the remaining rows ────────────────────────
	state = HeaderChecked
	rows := make([]Row, 0)
	for {
		row, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	logger.DebugContext(ctx, "ingest_rows_read", slog.Int("rows", scanner.Line()))

	// ── 3. Validating: every row, issues accumulated ──────────────────────
	state = Validating
	validator := NewRowValidator(populationSchema, pipeline.directory.Session())

	reports := make([]RowIssues, 0)
	for i, row := range rows {
		issues, err := validator.Validate(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("validate row %d: %w", i+1, err)
		}
		if len(issues) > 0 {
			reports = append(reports, RowIssues{Row: i + 1, Issues: issues})
		}
	}

	if len(reports) > 0 {
		logger.InfoContext(ctx, "ingest_rejected_rows",
			slog.Int("rows", len(rows)),
			slog.Int("invalid_rows", len(reports)),
		)
		return &Outcome{State: Rejected, Errors: reports}, nil
	}

	// ── 4. Committing: sequential, one insert per row ─────────────────────
	state = Committing
	committed := 0
	for i, row := range rows {
		record, err := validator.Build(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		record.ID = uuidv7.New()

		if err := pipeline.store.Insert(ctx, population, record); err != nil {
			return nil, fmt.Errorf("insert row %d after %d committed: %w", i+1, committed, err)
		}
		committed++
	}

	logger.InfoContext(ctx, "ingest_committed", slog.Int("count", committed))
	return &Outcome{State: Done, Count: committed}, nil
}
