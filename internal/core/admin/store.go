// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import "context"

// SettingRepository stores settings documents.
type SettingRepository interface {
	ListSettings(ctx context.Context) ([]Setting, error)
	CreateSetting(ctx context.Context, setting *Setting) error

	// UpdateSetting and DeleteSetting return NotFound for an unknown id.
	UpdateSetting(ctx context.Context, setting *Setting) error
	DeleteSetting(ctx context.Context, id string) error
}

// SubmissionRepository stores the submission log.
type SubmissionRepository interface {
	ListSubmissions(ctx context.Context) ([]Submission, error)
	CreateSubmission(ctx context.Context, submission *Submission) error
}

// Repository is the storage contract of the package.
type Repository interface {
	SettingRepository
	SubmissionRepository
}
