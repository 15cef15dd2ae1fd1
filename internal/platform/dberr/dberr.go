// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/sabha/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Application errors pass through untouched so repositories can return their own
// typed NotFound before calling Wrap.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return &apperr.AppError{
				Code:       "CONFLICT",
				Message:    "Record already exists",
				HTTPStatus: apperr.Conflict("").HTTPStatus,
				Cause:      fmt.Errorf("%s: %w", action, err),
			}
		case pgerrcode.ForeignKeyViolation:
			return &apperr.AppError{
				Code:       "VALIDATION_ERROR",
				Message:    "Referenced record does not exist",
				HTTPStatus: apperr.ValidationError("").HTTPStatus,
				Cause:      fmt.Errorf("%s: %w", action, err),
			}
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
