// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package attendancetest provides an in-memory attendance store for tests of
// the ingestion pipeline, dashboards and handlers.
package attendancetest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/platform/apperr"
)

// Memory implements [attendance.Repository] over per-population slices.
type Memory struct {
	mu      sync.Mutex
	records map[attendance.Population][]attendance.Record

	// FailAfter, when positive, makes every insert after that many succeed fail with InsertErr.
	FailAfter int
	InsertErr error

	// CountErr, when set, is returned by Count.
	CountErr error

	inserts int
}

// New returns an empty [Memory].
func New() *Memory {
	return &Memory{records: make(map[attendance.Population][]attendance.Record)}
}

// Records returns a copy of the stored rows of a population.
func (memory *Memory) Records(population attendance.Population) []attendance.Record {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return slices.Clone(memory.records[population])
}

// Insert implements [attendance.Inserter].
func (memory *Memory) Insert(_ context.Context, population attendance.Population, record *attendance.Record) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	if memory.FailAfter > 0 && memory.inserts >= memory.FailAfter {
		return memory.InsertErr
	}
	memory.inserts++

	now := time.Now().UTC()
	record.CreatedAt, record.UpdatedAt = now, now
	memory.records[population] = append(memory.records[population], *record)
	return nil
}

// Update implements [attendance.Repository].
func (memory *Memory) Update(_ context.Context, population attendance.Population, record *attendance.Record) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	for i, existing := range memory.records[population] {
		if existing.ID == record.ID {
			record.CreatedAt = existing.CreatedAt
			record.UpdatedAt = time.Now().UTC()
			memory.records[population][i] = *record
			return nil
		}
	}
	return apperr.NotFound("User")
}

// Get implements [attendance.Repository].
func (memory *Memory) Get(_ context.Context, population attendance.Population, id string) (*attendance.Record, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	for _, existing := range memory.records[population] {
		if existing.ID == id {
			found := existing
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// List implements [attendance.Repository]. Reference names are not joined;
// the view fields carry the ids instead.
func (memory *Memory) List(_ context.Context, population attendance.Population, query attendance.ListQuery) ([]attendance.View, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	views := make([]attendance.View, 0)
	for _, record := range memory.records[population] {
		switch {
		case query.PrantID != "" && record.PrantID != query.PrantID:
			continue
		case query.SanghatanID != "" && record.SanghatanID != query.SanghatanID:
			continue
		case query.Year != 0 && record.Year != query.Year:
			continue
		}
		views = append(views, attendance.View{
			ID:         record.ID,
			Name:       record.Name,
			Star:       record.StarID,
			Prakar:     record.PrakarID,
			Sanghatan:  record.SanghatanID,
			Dayitva:    record.DayitvaID,
			Kshetra:    record.KshetraID,
			Prant:      record.PrantID,
			Kendra:     record.Kendra,
			Mobile1:    record.Mobile1,
			Mobile2:    record.Mobile2,
			Email:      record.Email,
			Gender:     record.Gender,
			Attendance: record.Attendance,
			Year:       record.Year,
			CreatedAt:  record.CreatedAt,
			UpdatedAt:  record.UpdatedAt,
			Flags:      record.Flags,
		})
	}
	return views, nil
}

// Count implements [attendance.Counter] with the same semantics as the SQL filter.
func (memory *Memory) Count(_ context.Context, population attendance.Population, filter attendance.Filter) (int, error) {
	if memory.CountErr != nil {
		return 0, memory.CountErr
	}

	memory.mu.Lock()
	defer memory.mu.Unlock()

	total := 0
	for _, record := range memory.records[population] {
		if matches(record, filter) {
			total++
		}
	}
	return total, nil
}

func matches(record attendance.Record, filter attendance.Filter) bool {
	switch {
	case filter.Year != 0 && record.Year != filter.Year:
		return false
	case filter.StarID != "" && record.StarID != filter.StarID:
		return false
	case filter.PrakarID != "" && record.PrakarID != filter.PrakarID:
		return false
	case filter.DayitvaIDs != nil && !slices.Contains(filter.DayitvaIDs, record.DayitvaID):
		return false
	case filter.Gender != "" && record.Gender != filter.Gender:
		return false
	}

	if len(filter.AnyFlag) == 0 {
		return true
	}
	for _, flag := range filter.AnyFlag {
		if record.Flags[flag] {
			return true
		}
	}
	return false
}
