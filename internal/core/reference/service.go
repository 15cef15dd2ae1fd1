// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Service exposes the read-only listing use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new reference [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns every row of one table, including inactive ones.
func (service *Service) List(ctx context.Context, variant Variant) ([]Entity, error) {
	return service.repo.List(ctx, variant, false)
}

// Get returns one row by id.
func (service *Service) Get(ctx context.Context, variant Variant, id string) (*Entity, error) {
	return service.repo.Get(ctx, variant, id)
}

// Dropdowns returns every row of all six tables keyed by plural name. Inactive
// rows are included with their flag so the console can show and re-enable them.
func (service *Service) Dropdowns(ctx context.Context) (map[string][]Entity, error) {
	lists := make([][]Entity, len(Variants))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, variant := range Variants {
		group.Go(func() error {
			entities, err := service.repo.List(groupCtx, variant, false)
			if err != nil {
				return err
			}
			lists[i] = entities
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string][]Entity, len(Variants))
	for i, variant := range Variants {
		result[variant.Plural()] = lists[i]
	}
	return result, nil
}
