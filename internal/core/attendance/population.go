// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package attendance owns the three attendance populations and their records.

A [Population] is selected once at request entry ([ParsePopulation]) and carries
its [Schema] as data: the columns a CSV must provide, the meeting flags it tracks
and the table it is stored in. Everything downstream (ingestion, dashboards,
listings) reads the schema instead of branching on the population again.
*/
package attendance

import (
	"slices"
	"strings"

	"github.com/taibuivan/sabha/internal/platform/database/schema"
)

// # Populations

// Population is one of the three parallel attendance stores.
type Population string

const (
	// GeneralAssembly is the pratinidhi sabha (general assembly) population.
	GeneralAssembly Population = "pratinidhi-sabha"

	// ProvinceOrganizer is the prant pracharak baithak population.
	ProvinceOrganizer Population = "prant-pracharak"

	// WorkingCouncil is the akhil bharatiya karyakari mandal population.
	WorkingCouncil Population = "karyakari-mandal"
)

// Populations lists every population.
var Populations = []Population{GeneralAssembly, ProvinceOrganizer, WorkingCouncil}

// ParsePopulation maps a route or CLI selector onto a [Population].
func ParsePopulation(s string) (Population, bool) {
	population := Population(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Populations, population) {
		return population, true
	}
	return "", false
}

// String implements [fmt.Stringer].
func (p Population) String() string {
	return string(p)
}

// # Columns

// Column names shared by every population, as they appear in CSV headers.
const (
	FieldName        = "name"
	FieldStarID      = "star_id"
	FieldPrakarID    = "prakar_id"
	FieldSanghatanID = "sanghatan_id"
	FieldDayitvaID   = "dayitva_id"
	FieldKshetraID   = "kshetra_id"
	FieldPrantID     = "prant_id"
	FieldKendra      = "kendra"
	FieldMobile1     = "mobile_no_1"
	FieldMobile2     = "mobile_no_2"
	FieldEmail       = "email"
	FieldGender      = "gender"
	FieldAttendance  = "attendance"
	FieldYear        = "year"
)

// requiredFields is identical for the three populations.
var requiredFields = []string{
	FieldName, FieldStarID, FieldPrakarID, FieldSanghatanID, FieldDayitvaID,
	FieldKshetraID, FieldPrantID, FieldKendra, FieldEmail, FieldGender,
	FieldAttendance, FieldYear,
}

// # Schema

// Schema is the data a population carries.
type Schema struct {
	// Required columns; blank cells are reported as missing.
	Required []string

	// Flags are the meeting columns, each stored as a boolean column of the same name.
	Flags []string

	// Table is the storage table.
	Table schema.AttendanceTable
}

var schemas = map[Population]Schema{
	GeneralAssembly: {
		Required: requiredFields,
		Flags: []string{
			"a_b_karykarini_baithak",
			"kshetra_k_p_baithak",
			"prant_k_p_baithak",
			"karyakari_madal",
			"pratinidhi_sabha",
			"prant_p_baithak",
			"kshetra_p_baithak",
			"palak_adhikari_baithak",
		},
		Table: schema.AttendancePratinidhiSabha,
	},
	ProvinceOrganizer: {
		Required: requiredFields,
		Flags: []string{
			"gatividhi_toli_baithak",
			"a_b_baithak",
			"prant_pracharak_baithak",
			"kshetra_pracharak_baithak",
		},
		Table: schema.AttendancePrantPracharak,
	},
	WorkingCouncil: {
		Required: requiredFields,
		Flags: []string{
			"a_b_baithak",
			"kshetra_karyawah_baithak",
			"prant_karyawah_baithak",
			"karyakari_mandal_baithak",
			"prant_pracharak_baithak",
			"kshetra_pracharak_baithak",
			"bhougolic_palak_adhikari_baithak",
		},
		Table: schema.AttendanceKaryakariMandal,
	},
}

// Schema returns the schema of p. It panics for an unknown population, which
// can only come from bypassing [ParsePopulation].
func (p Population) Schema() Schema {
	populationSchema, ok := schemas[p]
	if !ok {
		panic("attendance: unknown population " + string(p))
	}
	return populationSchema
}

// ExpectedColumns is Required followed by Flags: the CSV header contract.
func (s Schema) ExpectedColumns() []string {
	return slices.Concat(s.Required, s.Flags)
}

// HasFlag reports whether name is one of the population's meeting flags.
func (s Schema) HasFlag(name string) bool {
	return slices.Contains(s.Flags, name)
}
