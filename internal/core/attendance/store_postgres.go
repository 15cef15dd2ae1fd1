// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/internal/platform/database/schema"
	"github.com/taibuivan/sabha/internal/platform/dberr"
	"github.com/taibuivan/sabha/internal/platform/postgres"
)

// PostgresRepository stores records in the 'attendance.*' tables.
//
// Flag column names come from [Schema.Flags], which is compile-time data, so
// they are interpolated into SQL; every value goes through a placeholder.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// recordArgs returns the shared column values in [schema.AttendanceTable.Columns] order.
func recordArgs(record *Record) []any {
	return []any{
		record.ID, record.Name, record.StarID, record.PrakarID, record.SanghatanID,
		record.DayitvaID, record.KshetraID, record.PrantID, record.Kendra,
		record.Mobile1, record.Mobile2, record.Email, string(record.Gender),
		string(record.Attendance), record.Year,
	}
}

// placeholder casts the nullable references so "" becomes NULL.
func placeholder(column string, position int, t schema.AttendanceTable) string {
	switch column {
	case t.PrakarID, t.SanghatanID:
		return fmt.Sprintf("NULLIF($%d, '')::uuid", position)
	default:
		return fmt.Sprintf("$%d", position)
	}
}

// Insert implements [Inserter].
func (repository *PostgresRepository) Insert(ctx context.Context, population Population, record *Record) error {
	populationSchema := population.Schema()
	t := populationSchema.Table

	columns := append(t.Columns(), populationSchema.Flags...)
	args := recordArgs(record)
	for _, flag := range populationSchema.Flags {
		args = append(args, record.Flags[flag])
	}

	placeholders := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = placeholder(column, i+1, t)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		t.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		t.CreatedAt, t.UpdatedAt,
	)

	if err := repository.db.QueryRow(ctx, query, args...).Scan(&record.CreatedAt, &record.UpdatedAt); err != nil {
		return dberr.Wrap(err, "insert_attendance")
	}
	return nil
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, population Population, record *Record) error {
	populationSchema := population.Schema()
	t := populationSchema.Table

	columns := append(t.Columns()[1:], populationSchema.Flags...)
	args := recordArgs(record)[1:]
	for _, flag := range populationSchema.Flags {
		args = append(args, record.Flags[flag])
	}

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = column + " = " + placeholder(column, i+1, t)
	}
	args = append(args, record.ID)

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = now() WHERE %s = $%d RETURNING %s, %s`,
		t.Table, strings.Join(assignments, ", "), t.UpdatedAt, t.ID, len(args),
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, args...).Scan(&record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("User")
	}
	return dberr.Wrap(err, "update_attendance")
}

// Get implements [Repository].
func (repository *PostgresRepository) Get(ctx context.Context, population Population, id string) (*Record, error) {
	populationSchema := population.Schema()
	t := populationSchema.Table

	selected := make([]string, 0, 17+len(populationSchema.Flags))
	for _, column := range t.Columns() {
		switch column {
		case t.ID, t.StarID, t.DayitvaID, t.KshetraID, t.PrantID:
			selected = append(selected, column+"::text")
		case t.PrakarID, t.SanghatanID:
			selected = append(selected, "COALESCE("+column+"::text, '')")
		case t.Gender, t.Attendance:
			selected = append(selected, column+"::text")
		default:
			selected = append(selected, column)
		}
	}
	selected = append(selected, t.CreatedAt, t.UpdatedAt)
	selected = append(selected, populationSchema.Flags...)

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(selected, ", "), t.Table, t.ID)

	record := &Record{}
	var gender, attendance string
	flagValues := make([]bool, len(populationSchema.Flags))
	destinations := []any{
		&record.ID, &record.Name, &record.StarID, &record.PrakarID, &record.SanghatanID,
		&record.DayitvaID, &record.KshetraID, &record.PrantID, &record.Kendra,
		&record.Mobile1, &record.Mobile2, &record.Email, &gender, &attendance, &record.Year,
		&record.CreatedAt, &record.UpdatedAt,
	}
	for i := range flagValues {
		destinations = append(destinations, &flagValues[i])
	}

	err := repository.db.QueryRow(ctx, query, id).Scan(destinations...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_attendance")
	}

	record.Gender = Gender(gender)
	record.Attendance = Attendance(attendance)
	record.Flags = make(map[string]bool, len(flagValues))
	for i, flag := range populationSchema.Flags {
		record.Flags[flag] = flagValues[i]
	}
	return record, nil
}

// List implements [Repository]. Reference ids are replaced by names; a dangling
// or absent reference yields an empty name.
func (repository *PostgresRepository) List(ctx context.Context, population Population, listQuery ListQuery) ([]View, error) {
	populationSchema := population.Schema()
	t := populationSchema.Table

	selected := []string{
		"r." + t.ID + "::text", "r." + t.Name,
		"COALESCE(s.name, '')", "COALESCE(pk.name, '')", "COALESCE(sg.name, '')",
		"COALESCE(d.name, '')", "COALESCE(k.name, '')", "COALESCE(p.name, '')",
		"r." + t.Kendra, "r." + t.Mobile1, "r." + t.Mobile2, "r." + t.Email,
		"r." + t.Gender + "::text", "r." + t.Attendance + "::text", "r." + t.Year,
		"r." + t.CreatedAt, "r." + t.UpdatedAt,
	}
	for _, flag := range populationSchema.Flags {
		selected = append(selected, "r."+flag)
	}

	var (
		where string
		args  []any
	)
	switch {
	case listQuery.PrantID != "":
		where, args = "r."+t.PrantID+" = $1", []any{listQuery.PrantID}
	case listQuery.SanghatanID != "":
		where, args = "r."+t.SanghatanID+" = $1", []any{listQuery.SanghatanID}
	case listQuery.Year != 0:
		where, args = "r."+t.Year+" = $1", []any{listQuery.Year}
	default:
		where = "TRUE"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s r
		LEFT JOIN %s s  ON s.%s  = r.%s
		LEFT JOIN %s pk ON pk.%s = r.%s
		LEFT JOIN %s sg ON sg.%s = r.%s
		LEFT JOIN %s d  ON d.%s  = r.%s
		LEFT JOIN %s k  ON k.%s  = r.%s
		LEFT JOIN %s p  ON p.%s  = r.%s
		WHERE %s
		ORDER BY r.%s ASC
	`,
		strings.Join(selected, ", "), t.Table,
		schema.RefStar.Table, schema.RefStar.ID, t.StarID,
		schema.RefPrakar.Table, schema.RefPrakar.ID, t.PrakarID,
		schema.RefSanghatan.Table, schema.RefSanghatan.ID, t.SanghatanID,
		schema.RefDayitva.Table, schema.RefDayitva.ID, t.DayitvaID,
		schema.RefKshetra.Table, schema.RefKshetra.ID, t.KshetraID,
		schema.RefPrant.Table, schema.RefPrant.ID, t.PrantID,
		where, t.ID,
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_attendance")
	}
	defer rows.Close()

	views := make([]View, 0)
	for rows.Next() {
		var (
			view               View
			gender, attendance string
			createdAt          time.Time
			updatedAt          time.Time
		)
		flagValues := make([]bool, len(populationSchema.Flags))
		destinations := []any{
			&view.ID, &view.Name, &view.Star, &view.Prakar, &view.Sanghatan,
			&view.Dayitva, &view.Kshetra, &view.Prant, &view.Kendra,
			&view.Mobile1, &view.Mobile2, &view.Email, &gender, &attendance, &view.Year,
			&createdAt, &updatedAt,
		}
		for i := range flagValues {
			destinations = append(destinations, &flagValues[i])
		}

		if err := rows.Scan(destinations...); err != nil {
			return nil, dberr.Wrap(err, "scan_attendance")
		}

		view.Gender = Gender(gender)
		view.Attendance = Attendance(attendance)
		view.CreatedAt, view.UpdatedAt = createdAt, updatedAt
		view.Flags = make(map[string]bool, len(flagValues))
		for i, flag := range populationSchema.Flags {
			view.Flags[flag] = flagValues[i]
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_attendance")
	}
	return views, nil
}

// Count implements [Counter].
func (repository *PostgresRepository) Count(ctx context.Context, population Population, filter Filter) (int, error) {
	populationSchema := population.Schema()
	t := populationSchema.Table

	// An explicitly empty set can never match.
	if filter.DayitvaIDs != nil && len(filter.DayitvaIDs) == 0 {
		return 0, nil
	}

	var (
		conditions []string
		args       []any
	)
	bind := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Year != 0 {
		bind(t.Year+" = $%d", filter.Year)
	}
	if filter.StarID != "" {
		bind(t.StarID+" = $%d", filter.StarID)
	}
	if filter.PrakarID != "" {
		bind(t.PrakarID+" = $%d", filter.PrakarID)
	}
	if filter.DayitvaIDs != nil {
		bind(t.DayitvaID+" = ANY($%d::uuid[])", filter.DayitvaIDs)
	}
	if filter.Gender != "" {
		bind(t.Gender+" = $%d", string(filter.Gender))
	}
	if len(filter.AnyFlag) > 0 {
		flags := make([]string, 0, len(filter.AnyFlag))
		for _, flag := range filter.AnyFlag {
			if !populationSchema.HasFlag(flag) {
				return 0, fmt.Errorf("attendance: %s has no flag %q", population, flag)
			}
			flags = append(flags, flag)
		}
		conditions = append(conditions, "("+strings.Join(flags, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.Table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := repository.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_attendance")
	}
	return count, nil
}
