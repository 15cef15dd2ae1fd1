// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/sabha/internal/platform/validate"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

// # Input

// Input is the body of the single-record add/update form.
//
// Meeting flags arrive as top-level keys next to the record fields; any key
// naming a flag is collected into Flags. A year supplied by the client is ignored.
type Input struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StarID      string `json:"star_id"`
	PrakarID    string `json:"prakar_id"`
	SanghatanID string `json:"sanghatan_id"`
	DayitvaID   string `json:"dayitva_id"`
	KshetraID   string `json:"kshetra_id"`
	PrantID     string `json:"prant_id"`
	Kendra      string `json:"kendra"`
	Mobile1     string `json:"mobile_no_1"`
	Mobile2     string `json:"mobile_no_2"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Attendance  string `json:"attendance"`

	Flags map[string]bool `json:"-"`
}

// UnmarshalJSON implements [json.Unmarshaler].
func (input *Input) UnmarshalJSON(data []byte) error {
	type plain Input
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded.Flags = make(map[string]bool)
	for key, value := range raw {
		if strings.HasSuffix(key, "_baithak") || isFlagName(key) {
			decoded.Flags[key] = truthy(value)
		}
	}

	*input = Input(decoded)
	return nil
}

func isFlagName(key string) bool {
	for _, population := range Populations {
		if population.Schema().HasFlag(key) {
			return true
		}
	}
	return false
}

// truthy accepts JSON booleans, non-zero numbers, and the strings "1"/"true".
func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case float64:
		return typed != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "1", "true":
			return true
		}
	}
	return false
}

// # Service

// Service implements the single-record use cases and listings.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new attendance [Service]. The clock decides the year of
// records written through [Service.Save].
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

/*
Save adds or updates one record of a population.

Parameters:
  - population: Population
  - input: Input (ID present means update)

Returns:
  - *Record: The persisted record, with year set to the current calendar year
  - bool: true when a new record was created
  - error: VALIDATION_ERROR, NOT_FOUND on update of an unknown id, or storage errors
*/
func (service *Service) Save(ctx context.Context, population Population, input Input) (*Record, bool, error) {
	populationSchema := population.Schema()

	// ── 1. Validation ─────────────────────────────────────────────────────
	gender, genderOK := ParseGender(input.Gender)
	attendance := Present
	attendanceOK := true
	if strings.TrimSpace(input.Attendance) != "" {
		attendance, attendanceOK = ParseAttendance(input.Attendance)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, input.Name).
		Required(FieldKendra, input.Kendra).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, strings.TrimSpace(input.Email)).
		UUID(FieldStarID, input.StarID).
		UUID(FieldPrakarID, input.PrakarID).
		UUID(FieldSanghatanID, input.SanghatanID).
		UUID(FieldDayitvaID, input.DayitvaID).
		UUID(FieldKshetraID, input.KshetraID).
		UUID(FieldPrantID, input.PrantID).
		Custom(FieldGender, !genderOK, "Invalid gender value").
		Custom(FieldAttendance, !attendanceOK, "Invalid attendance value")

	if input.ID != "" {
		validator.UUID("id", input.ID)
	}
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	// ── 2. Mapping ────────────────────────────────────────────────────────
	// Only the population's own flags are kept; keys of other populations are dropped.
	flags := make(map[string]bool, len(populationSchema.Flags))
	for _, flag := range populationSchema.Flags {
		flags[flag] = input.Flags[flag]
	}

	record := &Record{
		ID:          input.ID,
		Name:        strings.TrimSpace(input.Name),
		StarID:      strings.ToLower(input.StarID),
		PrakarID:    strings.ToLower(input.PrakarID),
		SanghatanID: strings.ToLower(input.SanghatanID),
		DayitvaID:   strings.ToLower(input.DayitvaID),
		KshetraID:   strings.ToLower(input.KshetraID),
		PrantID:     strings.ToLower(input.PrantID),
		Kendra:      strings.TrimSpace(input.Kendra),
		Mobile1:     strings.TrimSpace(input.Mobile1),
		Mobile2:     strings.TrimSpace(input.Mobile2),
		Email:       strings.TrimSpace(input.Email),
		Gender:      gender,
		Attendance:  attendance,
		Year:        service.now().Year(),
		Flags:       flags,
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	if record.ID != "" {
		if err := service.repo.Update(ctx, population, record); err != nil {
			return nil, false, err
		}
		service.logger.InfoContext(ctx, "attendance_record_updated",
			slog.String("population", population.String()),
			slog.String("id", record.ID),
		)
		return record, false, nil
	}

	record.ID = uuidv7.New()
	if err := service.repo.Insert(ctx, population, record); err != nil {
		return nil, false, err
	}
	service.logger.InfoContext(ctx, "attendance_record_created",
		slog.String("population", population.String()),
		slog.String("id", record.ID),
	)
	return record, true, nil
}

// Get returns one record.
func (service *Service) Get(ctx context.Context, population Population, id string) (*Record, error) {
	return service.repo.Get(ctx, population, id)
}

// List returns the named view of the records selected by query.
func (service *Service) List(ctx context.Context, population Population, query ListQuery) ([]View, error) {
	return service.repo.List(ctx, population, query)
}
