// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/sabha/internal/platform/metrics"
	"github.com/taibuivan/sabha/pkg/slice"
)

// # Directory

// Directory hands out request-scoped [Resolver] instances over a shared [Lookup].
type Directory struct {
	lookup  Lookup
	metrics *metrics.Metrics
}

// NewDirectory creates a [Directory] over lookup.
func NewDirectory(lookup Lookup, recorder *metrics.Metrics) *Directory {
	return &Directory{lookup: lookup, metrics: recorder}
}

// Session returns a fresh [Resolver]. Callers keep it for the duration of one
// upload or dashboard computation and then drop it.
func (directory *Directory) Session() *Resolver {
	return NewResolver(directory.lookup, directory.metrics)
}

// # Resolver

// Resolution is the outcome of resolving one named field of a record.
// Exactly one of ID and Issue is set.
type Resolution struct {
	ID    string
	Issue string
}

// OK reports whether the name resolved.
func (resolution Resolution) OK() bool {
	return resolution.Issue == ""
}

type memoKey struct {
	variant Variant
	name    string
}

type memoEntry struct {
	id    string
	found bool
}

// Resolver memoizes name lookups for a single request.
//
// Concurrent lookups of the same name share one store round trip, and a name
// resolved once keeps its answer for the lifetime of the Resolver. Store errors
// are not memoized. A Resolver is safe for concurrent use.
type Resolver struct {
	lookup  Lookup
	metrics *metrics.Metrics

	mu    sync.Mutex
	memo  map[memoKey]memoEntry
	group singleflight.Group
}

// NewResolver creates an empty [Resolver] over lookup.
func NewResolver(lookup Lookup, recorder *metrics.Metrics) *Resolver {
	return &Resolver{
		lookup:  lookup,
		metrics: recorder,
		memo:    make(map[memoKey]memoEntry),
	}
}

/*
Resolve turns the value of a record field into a reference id.

Parameters:
  - variant: Variant (table to search)
  - field: string (column name used in issue messages, e.g. "star_id")
  - name: string (raw cell value)

Returns:
  - Resolution: ID on success; Issue "Missing <field>" for a blank value or
    "Invalid <field>: <value>" for an unknown name
  - error: Store failures only
*/
func (resolver *Resolver) Resolve(ctx context.Context, variant Variant, field, name string) (Resolution, error) {
	canonical := Canonical(name)
	if canonical == "" {
		return Resolution{Issue: "Missing " + field}, nil
	}

	id, found, err := resolver.find(ctx, variant, canonical)
	if err != nil {
		return Resolution{}, err
	}
	if !found {
		return Resolution{Issue: fmt.Sprintf("Invalid %s: %s", field, canonical)}, nil
	}
	return Resolution{ID: id}, nil
}

// ID resolves one name and reports whether it exists. Blank names never exist.
func (resolver *Resolver) ID(ctx context.Context, variant Variant, name string) (string, bool, error) {
	canonical := Canonical(name)
	if canonical == "" {
		return "", false, nil
	}
	return resolver.find(ctx, variant, canonical)
}

// ResolveMany returns the ids of the names that exist, in input order and without
// duplicates. Unknown names are silently dropped.
func (resolver *Resolver) ResolveMany(ctx context.Context, variant Variant, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, found, err := resolver.ID(ctx, variant, name)
		if err != nil {
			return nil, err
		}
		if found {
			ids = append(ids, id)
		}
	}

	return slice.Unique(ids), nil
}

func (resolver *Resolver) find(ctx context.Context, variant Variant, canonical string) (string, bool, error) {
	key := memoKey{variant: variant, name: canonical}

	resolver.mu.Lock()
	entry, hit := resolver.memo[key]
	resolver.mu.Unlock()

	resolver.metrics.ReferenceLookup("memo", hit)
	if hit {
		return entry.id, entry.found, nil
	}

	value, err, _ := resolver.group.Do(string(variant)+"\x00"+canonical, func() (any, error) {
		// A flight that finished between the memo check and Do already filled the memo.
		resolver.mu.Lock()
		entry, hit := resolver.memo[key]
		resolver.mu.Unlock()
		if hit {
			return entry, nil
		}

		id, found, err := resolver.lookup.FindIDByName(ctx, variant, canonical)
		if err != nil {
			return nil, fmt.Errorf("resolve %s %q: %w", variant, canonical, err)
		}

		entry = memoEntry{id: id, found: found}
		resolver.mu.Lock()
		resolver.memo[key] = entry
		resolver.mu.Unlock()

		return entry, nil
	})
	if err != nil {
		return "", false, err
	}

	entry = value.(memoEntry)
	return entry.id, entry.found, nil
}
