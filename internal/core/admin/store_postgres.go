// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/internal/platform/database/schema"
	"github.com/taibuivan/sabha/internal/platform/dberr"
	"github.com/taibuivan/sabha/internal/platform/postgres"
)

// PostgresRepository stores settings and submissions in the 'admin' schema.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Settings

// ListSettings implements [SettingRepository].
func (repository *PostgresRepository) ListSettings(ctx context.Context) ([]Setting, error) {
	t := schema.AdminSetting
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s
		FROM %s
		ORDER BY %s`,
		t.ID, t.Value, t.CreatedAt, t.UpdatedAt,
		t.Table,
		t.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_settings")
	}
	defer rows.Close()

	settings := make([]Setting, 0)
	for rows.Next() {
		var setting Setting
		if err := rows.Scan(&setting.ID, &setting.Value, &setting.CreatedAt, &setting.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_setting")
		}
		settings = append(settings, setting)
	}
	return settings, dberr.Wrap(rows.Err(), "list_settings_rows")
}

// CreateSetting implements [SettingRepository].
func (repository *PostgresRepository) CreateSetting(ctx context.Context, setting *Setting) error {
	t := schema.AdminSetting
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s`,
		t.Table, t.ID, t.Value,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, setting.ID, []byte(setting.Value)).
		Scan(&setting.CreatedAt, &setting.UpdatedAt)
	return dberr.Wrap(err, "create_setting")
}

// UpdateSetting implements [SettingRepository].
func (repository *PostgresRepository) UpdateSetting(ctx context.Context, setting *Setting) error {
	t := schema.AdminSetting
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now()
		WHERE %s = $1
		RETURNING %s, %s`,
		t.Table,
		t.Value, t.UpdatedAt,
		t.ID,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, setting.ID, []byte(setting.Value)).
		Scan(&setting.CreatedAt, &setting.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Setting")
	}
	return dberr.Wrap(err, "update_setting")
}

// DeleteSetting implements [SettingRepository].
func (repository *PostgresRepository) DeleteSetting(ctx context.Context, id string) error {
	t := schema.AdminSetting
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_setting")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Setting")
	}
	return nil
}

// # Submissions

// ListSubmissions implements [SubmissionRepository]. Newest first.
func (repository *PostgresRepository) ListSubmissions(ctx context.Context) ([]Submission, error) {
	t := schema.AdminSubmission
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC`,
		t.ID, t.SystemUserID, t.Name, t.Email, t.Date,
		t.Table,
		t.Date,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_submissions")
	}
	defer rows.Close()

	submissions := make([]Submission, 0)
	for rows.Next() {
		var submission Submission
		if err := rows.Scan(&submission.ID, &submission.SystemUserID, &submission.Name, &submission.Email, &submission.Date); err != nil {
			return nil, dberr.Wrap(err, "scan_submission")
		}
		submissions = append(submissions, submission)
	}
	return submissions, dberr.Wrap(rows.Err(), "list_submissions_rows")
}

// CreateSubmission implements [SubmissionRepository].
func (repository *PostgresRepository) CreateSubmission(ctx context.Context, submission *Submission) error {
	t := schema.AdminSubmission
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		t.Table, t.ID, t.SystemUserID, t.Name, t.Email, t.Date,
	)

	_, err := repository.db.Exec(ctx, query,
		submission.ID, submission.SystemUserID, submission.Name, submission.Email, submission.Date,
	)
	return dberr.Wrap(err, "create_submission")
}
