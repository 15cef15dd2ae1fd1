// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package referencetest provides an in-memory reference store for tests of the
// packages that resolve names (ingestion, dashboards).
package referencetest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

// Memory implements [reference.Repository] over maps.
type Memory struct {
	mu       sync.RWMutex
	entities map[reference.Variant][]reference.Entity

	// Calls counts FindIDByName invocations.
	Calls atomic.Int64

	// Err, when set, is returned by every method.
	Err error
}

// New returns an empty [Memory].
func New() *Memory {
	return &Memory{entities: make(map[reference.Variant][]reference.Entity)}
}

// Seed inserts active rows with fresh ids and returns the ids in input order.
func (memory *Memory) Seed(variant reference.Variant, names ...string) []string {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	ids := make([]string, len(names))
	for i, name := range names {
		ids[i] = uuidv7.New()
		memory.entities[variant] = append(memory.entities[variant], reference.Entity{
			ID:     ids[i],
			Name:   reference.Canonical(name),
			Active: true,
		})
	}
	return ids
}

// Deactivate marks a seeded name inactive.
func (memory *Memory) Deactivate(variant reference.Variant, name string) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	rows := memory.entities[variant]
	for i := range rows {
		if rows[i].Name == reference.Canonical(name) {
			rows[i].Active = false
		}
	}
}

// MustID returns the id of a seeded name, or "" when absent.
func (memory *Memory) MustID(variant reference.Variant, name string) string {
	memory.mu.RLock()
	defer memory.mu.RUnlock()

	for _, entity := range memory.entities[variant] {
		if entity.Name == reference.Canonical(name) {
			return entity.ID
		}
	}
	return ""
}

// FindIDByName implements [reference.Lookup].
func (memory *Memory) FindIDByName(_ context.Context, variant reference.Variant, name string) (string, bool, error) {
	memory.Calls.Add(1)
	if memory.Err != nil {
		return "", false, memory.Err
	}

	id := memory.MustID(variant, name)
	return id, id != "", nil
}

// List implements [reference.Repository].
func (memory *Memory) List(_ context.Context, variant reference.Variant, activeOnly bool) ([]reference.Entity, error) {
	if memory.Err != nil {
		return nil, memory.Err
	}

	memory.mu.RLock()
	defer memory.mu.RUnlock()

	result := make([]reference.Entity, 0, len(memory.entities[variant]))
	for _, entity := range memory.entities[variant] {
		if activeOnly && !entity.Active {
			continue
		}
		result = append(result, entity)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Get implements [reference.Repository].
func (memory *Memory) Get(_ context.Context, variant reference.Variant, id string) (*reference.Entity, error) {
	if memory.Err != nil {
		return nil, memory.Err
	}

	memory.mu.RLock()
	defer memory.mu.RUnlock()

	for _, entity := range memory.entities[variant] {
		if entity.ID == id {
			found := entity
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Reference")
}
