// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/ingest"
	"github.com/taibuivan/sabha/internal/core/reference"
)

func rowFrom(population attendance.Population, cells []string) ingest.Row {
	row := make(ingest.Row)
	for i, column := range population.Schema().ExpectedColumns() {
		row[column] = "0"
		if i < len(cells) {
			row[column] = cells[i]
		}
	}
	return row
}

func newValidator(f *fixture, population attendance.Population) *ingest.RowValidator {
	return ingest.NewRowValidator(population.Schema(), reference.NewResolver(f.refs, nil))
}

/*
TestRowValidator_Valid checks that a well-formed row has no issues, whatever
the case of its enumerations.
*/
func TestRowValidator_Valid(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f, attendance.ProvinceOrganizer)

	for _, gender := range []string{"M", "m", "f", "F"} {
		cells := validRow("रमेश")
		cells[9] = gender

		issues, err := validator.Validate(context.Background(), rowFrom(attendance.ProvinceOrganizer, cells))
		require.NoError(t, err)
		assert.Empty(t, issues, gender)
	}
}

/*
TestRowValidator_IssueOrder verifies the message texts and their order.
*/
func TestRowValidator_IssueOrder(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f, attendance.ProvinceOrganizer)

	cells := validRow("")
	cells[1] = "अज्ञात"
	cells[2] = " "
	cells[9] = "X"
	cells[11] = "20x4"
	row := rowFrom(attendance.ProvinceOrganizer, cells)
	row["gatividhi_toli_baithak"] = "yes"
	row["a_b_baithak"] = ""

	issues, err := validator.Validate(context.Background(), row)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Missing fields: name, prakar_id",
		"Invalid star_id: अज्ञात",
		"Missing prakar_id",
		"Invalid gender value: X",
		"Invalid value for gatividhi_toli_baithak: yes",
		"Invalid year value: 20x4",
	}, issues)
}

func TestRowValidator_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.refs.Err = errors.New("connection reset")
	validator := newValidator(f, attendance.WorkingCouncil)

	_, err := validator.Validate(context.Background(), rowFrom(attendance.WorkingCouncil, validRow("रमेश")))
	assert.ErrorContains(t, err, "connection reset")
}

/*
TestRowValidator_Build maps names to ids and coerces cells.
*/
func TestRowValidator_Build(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f, attendance.GeneralAssembly)

	row := rowFrom(attendance.GeneralAssembly, validRow("रमेश"))
	row["pratinidhi_sabha"] = "1"
	row["kshetra_p_baithak"] = ""
	row["mobile_no_1"] = "9800000000"

	record, err := validator.Build(context.Background(), row)
	require.NoError(t, err)

	assert.Equal(t, f.refs.MustID(reference.Star, "प्रांत"), record.StarID)
	assert.Equal(t, f.refs.MustID(reference.Prant, "महाकौशल"), record.PrantID)
	assert.Equal(t, attendance.Male, record.Gender)
	assert.Equal(t, attendance.Present, record.Attendance)
	assert.Equal(t, 2024, record.Year)
	assert.Equal(t, "9800000000", record.Mobile1)
	assert.True(t, record.Flags["pratinidhi_sabha"])
	assert.False(t, record.Flags["kshetra_p_baithak"])
	assert.Len(t, record.Flags, 8)
}
