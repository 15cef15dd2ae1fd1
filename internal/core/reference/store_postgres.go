// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/internal/platform/database/schema"
	"github.com/taibuivan/sabha/internal/platform/dberr"
	"github.com/taibuivan/sabha/internal/platform/postgres"
)

// PostgresRepository reads the 'reference.*' tables.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func table(variant Variant) schema.ReferenceTable {
	switch variant {
	case Star:
		return schema.RefStar
	case Prakar:
		return schema.RefPrakar
	case Sanghatan:
		return schema.RefSanghatan
	case Dayitva:
		return schema.RefDayitva
	case Kshetra:
		return schema.RefKshetra
	default:
		return schema.RefPrant.ReferenceTable
	}
}

// selectColumns yields id, name, active and the zone reference (empty for
// everything but provinces) so every variant scans into the same destinations.
func selectColumns(variant Variant) string {
	t := table(variant)
	zone := "''"
	if variant == Prant {
		zone = schema.RefPrant.KshetraID + "::text"
	}
	return fmt.Sprintf("%s::text, %s, %s, %s", t.ID, t.Name, t.Active, zone)
}

// FindIDByName implements [Lookup].
func (repository *PostgresRepository) FindIDByName(ctx context.Context, variant Variant, name string) (string, bool, error) {
	t := table(variant)
	query := fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s = $1`, t.ID, t.Table, t.Name)

	var id string
	err := repository.db.QueryRow(ctx, query, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dberr.Wrap(err, "find_reference_by_name")
	}
	return id, true, nil
}

// List returns the rows of one table ordered by name.
func (repository *PostgresRepository) List(ctx context.Context, variant Variant, activeOnly bool) ([]Entity, error) {
	t := table(variant)
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns(variant), t.Table)
	if activeOnly {
		query += fmt.Sprintf(` WHERE %s`, t.Active)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC`, t.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reference")
	}
	defer rows.Close()

	entities := make([]Entity, 0)
	for rows.Next() {
		var entity Entity
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Active, &entity.KshetraID); err != nil {
			return nil, dberr.Wrap(err, "scan_reference")
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_reference")
	}
	return entities, nil
}

// Get returns one row by id.
func (repository *PostgresRepository) Get(ctx context.Context, variant Variant, id string) (*Entity, error) {
	t := table(variant)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(variant), t.Table, t.ID)

	var entity Entity
	err := repository.db.QueryRow(ctx, query, id).Scan(&entity.ID, &entity.Name, &entity.Active, &entity.KshetraID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(strings.ToUpper(string(variant[:1])) + string(variant[1:]))
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_reference")
	}
	return &entity, nil
}
