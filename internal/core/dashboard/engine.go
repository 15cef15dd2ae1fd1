// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/metrics"
)

// Summary maps metric keys to counts. Every metric of the taxonomy is present.
type Summary map[string]int

// Engine evaluates dashboard taxonomies against an attendance counter.
type Engine struct {
	directory *reference.Directory
	counter   attendance.Counter
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewEngine creates a new dashboard [Engine].
func NewEngine(directory *reference.Directory, counter attendance.Counter, logger *slog.Logger, recorder *metrics.Metrics) *Engine {
	return &Engine{directory: directory, counter: counter, logger: logger, metrics: recorder}
}

/*
Compute evaluates the dashboard of a population for one year.

Description: Each metric is resolved and counted on its own, with at most
[constants.ResolveConcurrency] metrics in flight. Reference names are looked
up once per call.

Returns:
  - Summary: One entry per metric, zero when nothing matches
  - error: Store failures; the first one cancels the remaining metrics
*/
func (engine *Engine) Compute(ctx context.Context, population attendance.Population, year int) (Summary, error) {
	return engine.ComputeMetrics(ctx, population, year, Taxonomy(population))
}

// ComputeMetrics evaluates an explicit metric list. [Engine.Compute] uses the
// population's taxonomy.
func (engine *Engine) ComputeMetrics(ctx context.Context, population attendance.Population, year int, definitions []Metric) (Summary, error) {
	started := time.Now()
	resolver := engine.directory.Session()
	counts := make([]int, len(definitions))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.ResolveConcurrency)

	for i, metric := range definitions {
		group.Go(func() error {
			count, err := engine.count(groupCtx, resolver, population, year, metric)
			if err != nil {
				return fmt.Errorf("metric %s: %w", metric.Key, err)
			}
			counts[i] = count
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := make(Summary, len(definitions))
	for i, metric := range definitions {
		summary[metric.Key] = counts[i]
	}

	elapsed := time.Since(started)
	engine.metrics.Dashboard(population.String(), elapsed)
	engine.logger.DebugContext(ctx, "dashboard_computed",
		slog.String("population", population.String()),
		slog.Int("year", year),
		slog.Int("metrics", len(definitions)),
		slog.Duration("elapsed", elapsed),
	)

	return summary, nil
}

func (engine *Engine) count(ctx context.Context, resolver *reference.Resolver, population attendance.Population, year int, metric Metric) (int, error) {
	filter := attendance.Filter{Year: year}

	switch metric.Kind {
	case KindTotal:

	case KindDayitvaSet:
		ids, err := resolver.ResolveMany(ctx, reference.Dayitva, metric.Dayitvas)
		if err != nil {
			return 0, err
		}
		if len(ids) == 0 {
			return 0, nil
		}
		filter.DayitvaIDs = ids

	case KindStar:
		starID, found, err := resolver.ID(ctx, reference.Star, metric.Star)
		if err != nil || !found {
			return 0, err
		}
		filter.StarID = starID

	case KindStarPrakar:
		starID, found, err := resolver.ID(ctx, reference.Star, metric.Star)
		if err != nil || !found {
			return 0, err
		}
		prakarID, found, err := resolver.ID(ctx, reference.Prakar, metric.Prakar)
		if err != nil || !found {
			return 0, err
		}
		filter.StarID, filter.PrakarID = starID, prakarID

	case KindStarDayitva:
		starID, found, err := resolver.ID(ctx, reference.Star, metric.Star)
		if err != nil || !found {
			return 0, err
		}
		dayitvaID, found, err := resolver.ID(ctx, reference.Dayitva, metric.Dayitva)
		if err != nil || !found {
			return 0, err
		}
		filter.StarID = starID
		filter.DayitvaIDs = []string{dayitvaID}

	case KindGender:
		filter.Gender = metric.Gender

	case KindFlagAny:
		filter.AnyFlag = metric.Flags

	case KindSum:
		total := 0
		for _, term := range metric.Terms {
			count, err := engine.count(ctx, resolver, population, year, term)
			if err != nil {
				return 0, err
			}
			total += count
		}
		return total, nil

	default:
		return 0, fmt.Errorf("unknown metric kind %d", metric.Kind)
	}

	return engine.counter.Count(ctx, population, filter)
}
