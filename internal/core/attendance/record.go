// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"encoding/json"
	"strings"
	"time"
)

// # Enumerations

// Gender is stored lowercase.
type Gender string

const (
	Male   Gender = "m"
	Female Gender = "f"
)

// ParseGender accepts "m"/"f" in any case.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case Male:
		return Male, true
	case Female:
		return Female, true
	default:
		return "", false
	}
}

// Attendance is stored lowercase: present or absent.
type Attendance string

const (
	Present Attendance = "p"
	Absent  Attendance = "a"
)

// ParseAttendance accepts "p"/"a" in any case.
func ParseAttendance(s string) (Attendance, bool) {
	switch Attendance(strings.ToLower(strings.TrimSpace(s))) {
	case Present:
		return Present, true
	case Absent:
		return Absent, true
	default:
		return "", false
	}
}

// # Records

// Record is one attendance row of a population.
//
// PrakarID and SanghatanID may be empty, which is stored as NULL.
// Flags hold the population's meeting columns and are flattened into the JSON
// object, so a record serializes with the same keys as its CSV row.
type Record struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	StarID      string     `json:"star_id"`
	PrakarID    string     `json:"prakar_id,omitempty"`
	SanghatanID string     `json:"sanghatan_id,omitempty"`
	DayitvaID   string     `json:"dayitva_id"`
	KshetraID   string     `json:"kshetra_id"`
	PrantID     string     `json:"prant_id"`
	Kendra      string     `json:"kendra"`
	Mobile1     string     `json:"mobile_no_1"`
	Mobile2     string     `json:"mobile_no_2"`
	Email       string     `json:"email"`
	Gender      Gender     `json:"gender"`
	Attendance  Attendance `json:"attendance"`
	Year        int        `json:"year"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Flags map[string]bool `json:"-"`
}

// MarshalJSON implements [json.Marshaler].
func (record Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return flatten(plain(record), record.Flags)
}

// View is a record with its references replaced by names, as shown in the
// console tables and sent to report export.
type View struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Star       string     `json:"star"`
	Prakar     string     `json:"prakar"`
	Sanghatan  string     `json:"sanghatan"`
	Dayitva    string     `json:"dayitva"`
	Kshetra    string     `json:"kshetra"`
	Prant      string     `json:"prant"`
	Kendra     string     `json:"kendra"`
	Mobile1    string     `json:"mobile_no_1"`
	Mobile2    string     `json:"mobile_no_2"`
	Email      string     `json:"email"`
	Gender     Gender     `json:"gender"`
	Attendance Attendance `json:"attendance"`
	Year       int        `json:"year"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Flags map[string]bool `json:"-"`
}

// MarshalJSON implements [json.Marshaler].
func (view View) MarshalJSON() ([]byte, error) {
	type plain View
	return flatten(plain(view), view.Flags)
}

func flatten(base any, flags map[string]bool) ([]byte, error) {
	encoded, err := json.Marshal(base)
	if err != nil || len(flags) == 0 {
		return encoded, err
	}

	object := make(map[string]any)
	if err := json.Unmarshal(encoded, &object); err != nil {
		return nil, err
	}
	for flag, value := range flags {
		object[flag] = value
	}
	return json.Marshal(object)
}

// # Queries

// ListQuery selects the records of a listing. Exactly one selector is expected;
// an empty query lists the whole population.
type ListQuery struct {
	Year        int
	PrantID     string
	SanghatanID string
}

// Filter narrows a count. Zero-valued fields do not constrain.
//
// DayitvaIDs distinguishes nil (any dayitva) from an empty set, which matches
// nothing. AnyFlag requires at least one of the named flags to be true.
type Filter struct {
	Year       int
	StarID     string
	PrakarID   string
	DayitvaIDs []string
	Gender     Gender
	AnyFlag    []string
}
