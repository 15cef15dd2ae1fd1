// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/attendance/attendancetest"
	"github.com/taibuivan/sabha/internal/platform/apperr"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (*attendance.Service, *attendancetest.Memory) {
	t.Helper()
	store := attendancetest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return attendance.NewService(store, logger, fixedClock), store
}

func validInput() attendance.Input {
	return attendance.Input{
		Name:        "रमेश",
		StarID:      uuidv7.New(),
		PrakarID:    uuidv7.New(),
		SanghatanID: uuidv7.New(),
		DayitvaID:   uuidv7.New(),
		KshetraID:   uuidv7.New(),
		PrantID:     uuidv7.New(),
		Kendra:      "भोपाल",
		Email:       "ramesh@example.org",
		Gender:      "M",
	}
}

/*
TestService_Save_Create verifies defaults applied on creation.
*/
func TestService_Save_Create(t *testing.T) {
	service, store := newTestService(t)

	input := validInput()
	input.Flags = map[string]bool{"a_b_baithak": true}

	record, created, err := service.Save(context.Background(), attendance.ProvinceOrganizer, input)
	require.NoError(t, err)

	assert.True(t, created)
	assert.True(t, uuidv7.Valid(record.ID))
	assert.Equal(t, 2026, record.Year)
	assert.Equal(t, attendance.Present, record.Attendance)
	assert.Equal(t, attendance.Male, record.Gender)
	assert.True(t, record.Flags["a_b_baithak"])
	assert.False(t, record.Flags["gatividhi_toli_baithak"])
	assert.Len(t, record.Flags, 4)
	assert.Len(t, store.Records(attendance.ProvinceOrganizer), 1)
}

/*
TestService_Save_Update replaces an existing record and keeps its id.
*/
func TestService_Save_Update(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	created, _, err := service.Save(ctx, attendance.GeneralAssembly, validInput())
	require.NoError(t, err)

	update := validInput()
	update.ID = created.ID
	update.Attendance = "a"

	record, wasCreated, err := service.Save(ctx, attendance.GeneralAssembly, update)
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, created.ID, record.ID)

	stored := store.Records(attendance.GeneralAssembly)
	require.Len(t, stored, 1)
	assert.Equal(t, attendance.Absent, stored[0].Attendance)
}

func TestService_Save_UpdateUnknown(t *testing.T) {
	service, _ := newTestService(t)

	input := validInput()
	input.ID = uuidv7.New()

	_, _, err := service.Save(context.Background(), attendance.WorkingCouncil, input)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "User not found", err.Error())
}

/*
TestService_Save_ForeignFlags verifies that meeting flags of another population
are dropped instead of rejected, since the console posts every checkbox.
*/
func TestService_Save_ForeignFlags(t *testing.T) {
	service, store := newTestService(t)

	var input attendance.Input
	body := `{"name":"रमेश","kendra":"भोपाल","email":"ramesh@example.org","gender":"M",
		"pratinidhi_sabha":false,"karyakari_madal":true,"a_b_baithak":"1"}`
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	base := validInput()
	input.StarID, input.PrakarID, input.SanghatanID = base.StarID, base.PrakarID, base.SanghatanID
	input.DayitvaID, input.KshetraID, input.PrantID = base.DayitvaID, base.KshetraID, base.PrantID

	record, created, err := service.Save(context.Background(), attendance.ProvinceOrganizer, input)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Len(t, record.Flags, len(attendance.ProvinceOrganizer.Schema().Flags))
	assert.True(t, record.Flags["a_b_baithak"])
	assert.NotContains(t, record.Flags, "pratinidhi_sabha")
	assert.NotContains(t, record.Flags, "karyakari_madal")

	stored := store.Records(attendance.ProvinceOrganizer)
	require.Len(t, stored, 1)
	assert.NotContains(t, stored[0].Flags, "pratinidhi_sabha")
}

/*
TestService_Save_Validation covers the rejected inputs.
*/
func TestService_Save_Validation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*attendance.Input)
		field string
	}{
		{"missing_name", func(in *attendance.Input) { in.Name = " " }, "name"},
		{"missing_kendra", func(in *attendance.Input) { in.Kendra = "" }, "kendra"},
		{"bad_email", func(in *attendance.Input) { in.Email = "not-an-email" }, "email"},
		{"bad_star", func(in *attendance.Input) { in.StarID = "क्षेत्र" }, "star_id"},
		{"missing_prant", func(in *attendance.Input) { in.PrantID = "" }, "prant_id"},
		{"bad_gender", func(in *attendance.Input) { in.Gender = "x" }, "gender"},
		{"bad_attendance", func(in *attendance.Input) { in.Attendance = "maybe" }, "attendance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestService(t)
			input := validInput()
			tt.mut(&input)

			_, _, err := service.Save(context.Background(), attendance.ProvinceOrganizer, input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)

			fields := make([]string, 0, len(appError.Details))
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Empty(t, store.Records(attendance.ProvinceOrganizer))
		})
	}
}

/*
TestInput_UnmarshalJSON checks flag collection and truthiness of the form body.
*/
func TestInput_UnmarshalJSON(t *testing.T) {
	body := `{
		"name": "सुरेश",
		"year": 1999,
		"a_b_baithak": true,
		"prant_pracharak_baithak": "1",
		"kshetra_pracharak_baithak": 0,
		"gatividhi_toli_baithak": "false",
		"karyakari_madal": 1
	}`

	var input attendance.Input
	require.NoError(t, json.Unmarshal([]byte(body), &input))

	assert.Equal(t, "सुरेश", input.Name)
	assert.Equal(t, map[string]bool{
		"a_b_baithak":               true,
		"prant_pracharak_baithak":   true,
		"kshetra_pracharak_baithak": false,
		"gatividhi_toli_baithak":    false,
		"karyakari_madal":           true,
	}, input.Flags)
}

/*
TestRecord_MarshalJSON verifies that flags are flattened next to the fields.
*/
func TestRecord_MarshalJSON(t *testing.T) {
	record := attendance.Record{
		ID:    "r1",
		Name:  "सुरेश",
		Year:  2025,
		Flags: map[string]bool{"a_b_baithak": true, "prant_pracharak_baithak": false},
	}

	encoded, err := json.Marshal(record)
	require.NoError(t, err)

	var object map[string]any
	require.NoError(t, json.Unmarshal(encoded, &object))
	assert.Equal(t, true, object["a_b_baithak"])
	assert.Equal(t, false, object["prant_pracharak_baithak"])
	assert.Equal(t, "सुरेश", object["name"])
	assert.NotContains(t, object, "Flags")
	assert.NotContains(t, object, "prakar_id")
}

func TestParsePopulation(t *testing.T) {
	tests := []struct {
		input string
		want  attendance.Population
		ok    bool
	}{
		{"pratinidhi-sabha", attendance.GeneralAssembly, true},
		{" Prant-Pracharak ", attendance.ProvinceOrganizer, true},
		{"karyakari-mandal", attendance.WorkingCouncil, true},
		{"abkm", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := attendance.ParsePopulation(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_ExpectedColumns(t *testing.T) {
	columns := attendance.WorkingCouncil.Schema().ExpectedColumns()

	require.Len(t, columns, 12+7)
	assert.Equal(t, "name", columns[0])
	assert.Equal(t, "year", columns[11])
	assert.Equal(t, "bhougolic_palak_adhikari_baithak", columns[18])

	assert.Len(t, attendance.GeneralAssembly.Schema().Flags, 8)
	assert.Len(t, attendance.ProvinceOrganizer.Schema().Flags, 4)
	assert.Panics(t, func() { attendance.Population("x").Schema() })
}
