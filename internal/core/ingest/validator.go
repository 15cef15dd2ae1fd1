// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/pkg/convert"
)

// RowIssues is the report of one rejected row. Row is 1-based over data rows.
type RowIssues struct {
	Row    int      `json:"row"`
	Issues []string `json:"issues"`
}

// RowValidator checks rows of one population against the reference directory.
type RowValidator struct {
	schema   attendance.Schema
	resolver *reference.Resolver
}

// NewRowValidator binds a population schema to a request-scoped resolver.
func NewRowValidator(populationSchema attendance.Schema, resolver *reference.Resolver) *RowValidator {
	return &RowValidator{schema: populationSchema, resolver: resolver}
}

/*
Validate returns the issues of one row, in a fixed order:
required presence, the six references, enumerations, meeting flags, year.

Returns:
  - []string: Empty when the row can be committed
  - error: Reference store failures only
*/
func (validator *RowValidator) Validate(ctx context.Context, row Row) ([]string, error) {
	issues := make([]string, 0)

	// ── 1. Required presence ──────────────────────────────────────────────
	missing := make([]string, 0)
	for _, field := range validator.schema.Required {
		if strings.TrimSpace(row[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, "Missing fields: "+strings.Join(missing, ", "))
	}

	// ── 2. References (fan-out, join) ─────────────────────────────────────
	resolutions, err := validator.resolveAll(ctx, row)
	if err != nil {
		return nil, err
	}
	for _, resolution := range resolutions {
		if !resolution.OK() {
			issues = append(issues, resolution.Issue)
		}
	}

	// ── 3. Enumerations ───────────────────────────────────────────────────
	if value := row[attendance.FieldAttendance]; value != "" {
		if _, ok := attendance.ParseAttendance(value); !ok {
			issues = append(issues, fmt.Sprintf("Invalid %s value: %s", attendance.FieldAttendance, value))
		}
	}
	if value := row[attendance.FieldGender]; value != "" {
		if _, ok := attendance.ParseGender(value); !ok {
			issues = append(issues, fmt.Sprintf("Invalid %s value: %s", attendance.FieldGender, value))
		}
	}

	// ── 4. Meeting flags ──────────────────────────────────────────────────
	for _, flag := range validator.schema.Flags {
		if _, ok := convert.Flag(row[flag]); !ok {
			issues = append(issues, fmt.Sprintf("Invalid value for %s: %s", flag, row[flag]))
		}
	}

	// ── 5. Year ───────────────────────────────────────────────────────────
	if value := row[attendance.FieldYear]; value != "" {
		if _, err := convert.Year(value); err != nil {
			issues = append(issues, fmt.Sprintf("Invalid %s value: %s", attendance.FieldYear, value))
		}
	}

	return issues, nil
}

// resolveAll resolves the six reference columns concurrently. Results keep the
// order of [reference.Variants].
func (validator *RowValidator) resolveAll(ctx context.Context, row Row) ([]reference.Resolution, error) {
	resolutions := make([]reference.Resolution, len(reference.Variants))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, variant := range reference.Variants {
		group.Go(func() error {
			resolution, err := validator.resolver.Resolve(groupCtx, variant, variant.Field(), row[variant.Field()])
			if err != nil {
				return err
			}
			resolutions[i] = resolution
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return resolutions, nil
}

/*
Build maps a validated row onto a record ready for insertion. References are
resolved again through the resolver, which answers from its memo.

Returns:
  - *attendance.Record: Without ID and timestamps
  - error: A reference that no longer resolves, a bad year, or store failures
*/
func (validator *RowValidator) Build(ctx context.Context, row Row) (*attendance.Record, error) {
	ids := make(map[reference.Variant]string, len(reference.Variants))
	for _, variant := range reference.Variants {
		id, found, err := validator.resolver.ID(ctx, variant, row[variant.Field()])
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("build record: %s %q no longer resolves", variant, row[variant.Field()])
		}
		ids[variant] = id
	}

	year, err := convert.Year(row[attendance.FieldYear])
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}

	gender, _ := attendance.ParseGender(row[attendance.FieldGender])
	presence, _ := attendance.ParseAttendance(row[attendance.FieldAttendance])

	flags := make(map[string]bool, len(validator.schema.Flags))
	for _, flag := range validator.schema.Flags {
		flags[flag], _ = convert.Flag(row[flag])
	}

	return &attendance.Record{
		Name:        row[attendance.FieldName],
		StarID:      ids[reference.Star],
		PrakarID:    ids[reference.Prakar],
		SanghatanID: ids[reference.Sanghatan],
		DayitvaID:   ids[reference.Dayitva],
		KshetraID:   ids[reference.Kshetra],
		PrantID:     ids[reference.Prant],
		Kendra:      row[attendance.FieldKendra],
		Mobile1:     row[attendance.FieldMobile1],
		Mobile2:     row[attendance.FieldMobile2],
		Email:       row[attendance.FieldEmail],
		Gender:      gender,
		Attendance:  presence,
		Year:        year,
		Flags:       flags,
	}, nil
}
