// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/internal/platform/validate"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

// Service implements the settings and submission use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new admin [Service].
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

// # Settings

// ListSettings returns every settings document, oldest first.
func (service *Service) ListSettings(ctx context.Context) ([]Setting, error) {
	return service.repo.ListSettings(ctx)
}

/*
CreateSetting stores a new settings document.

Parameters:
  - value: json.RawMessage (must be a JSON object)

Returns:
  - *Setting: The stored document
  - error: VALIDATION_ERROR when value is not an object
*/
func (service *Service) CreateSetting(ctx context.Context, value json.RawMessage) (*Setting, error) {
	if err := requireObject(value); err != nil {
		return nil, err
	}

	setting := &Setting{ID: uuidv7.New(), Value: value}
	if err := service.repo.CreateSetting(ctx, setting); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "setting_created", slog.String("id", setting.ID))
	return setting, nil
}

// UpdateSetting replaces the document of an existing setting.
func (service *Service) UpdateSetting(ctx context.Context, id string, value json.RawMessage) (*Setting, error) {
	if err := requireObject(value); err != nil {
		return nil, err
	}

	setting := &Setting{ID: id, Value: value}
	if err := service.repo.UpdateSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// DeleteSetting removes a setting.
func (service *Service) DeleteSetting(ctx context.Context, id string) error {
	if err := service.repo.DeleteSetting(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "setting_deleted", slog.String("id", id))
	return nil
}

func requireObject(value json.RawMessage) error {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return apperr.ValidationError("Setting must be a JSON object")
	}
	return nil
}

// # Submissions

// ListSubmissions returns the submission log, newest first.
func (service *Service) ListSubmissions(ctx context.Context) ([]Submission, error) {
	return service.repo.ListSubmissions(ctx)
}

/*
CreateSubmission appends to the submission log.

Parameters:
  - input: SubmissionInput (system_user_id, name and email required)

Returns:
  - *Submission: The stored entry
  - error: VALIDATION_ERROR for missing fields
*/
func (service *Service) CreateSubmission(ctx context.Context, input SubmissionInput) (*Submission, error) {
	validator := &validate.Validator{}
	validator.
		Required("system_user_id", input.SystemUserID).
		Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Required("email", input.Email).
		Email("email", strings.TrimSpace(input.Email))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	date := service.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	submission := &Submission{
		ID:           uuidv7.New(),
		SystemUserID: strings.TrimSpace(input.SystemUserID),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Date:         date,
	}
	if err := service.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}
