// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin holds the console's free-form settings and its submission log.

Settings are opaque JSON objects owned by the console; the server only stores
them. Submissions record who sent a list and when.
*/
package admin

import (
	"encoding/json"
	"time"
)

// Setting is one stored settings document.
type Setting struct {
	ID        string          `json:"id"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Submission is one entry of the submission log.
type Submission struct {
	ID           string    `json:"id"`
	SystemUserID string    `json:"system_user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Date         time.Time `json:"date"`
}

// SubmissionInput is the body of a new submission. A missing date means now.
type SubmissionInput struct {
	SystemUserID string     `json:"system_user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Date         *time.Time `json:"date"`
}
