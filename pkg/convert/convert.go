// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides the string conversions shared by CSV ingestion and
HTTP handlers.

Unlike [strconv], the helpers here encode the tolerance rules of spreadsheet
input: surrounding whitespace is ignored and blank cells have a defined meaning.
*/
package convert

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotYear is returned by [Year] for values that are not a plain integer year.
var ErrNotYear = errors.New("convert: not a year")

// Year parses a calendar year such as "2025".
// Surrounding whitespace is ignored; signs, fractions and trailing text are rejected.
func Year(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, ErrNotYear
	}

	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return 0, ErrNotYear
	}
	return year, nil
}

// Flag parses a spreadsheet boolean cell.
//
// Blank means false, "1" true and "0" false. Any other token reports ok=false.
func Flag(s string) (value bool, ok bool) {
	switch strings.TrimSpace(s) {
	case "":
		return false, true
	case "1":
		return true, true
	case "0":
		return false, true
	default:
		return false, false
	}
}
