// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import "context"

// Counter counts records matching a [Filter]. The dashboard engine depends on it alone.
type Counter interface {
	Count(ctx context.Context, population Population, filter Filter) (int, error)
}

// Inserter persists one new record. The ingestion pipeline depends on it alone.
type Inserter interface {
	Insert(ctx context.Context, population Population, record *Record) error
}

// Repository is the full storage contract of the three populations.
type Repository interface {
	Counter
	Inserter

	// Update replaces every column of an existing record; NotFound when absent.
	Update(ctx context.Context, population Population, record *Record) error
	Get(ctx context.Context, population Population, id string) (*Record, error)
	List(ctx context.Context, population Population, query ListQuery) ([]View, error)
}
