// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"slices"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/platform/constants"
)

// HeaderMismatch lists why a header line does not fit a population.
type HeaderMismatch struct {
	Missing []string `json:"missingHeaders"`
	Extra   []string `json:"extraHeaders"`
}

/*
CheckHeaders compares a normalized header line with the columns a population expects.

Parameters:
  - populationSchema: attendance.Schema
  - headers: []string (lowercased, as returned by [Scanner.Header])

Returns:
  - *HeaderMismatch: nil when the header is accepted. A header is rejected when
    any expected column is absent, or when more than [constants.MaxExtraHeaders]
    unexpected columns are present.
*/
func CheckHeaders(populationSchema attendance.Schema, headers []string) *HeaderMismatch {
	expected := populationSchema.ExpectedColumns()

	missing := make([]string, 0)
	for _, column := range expected {
		if !slices.Contains(headers, column) {
			missing = append(missing, column)
		}
	}

	extra := make([]string, 0)
	for _, header := range headers {
		if !slices.Contains(expected, header) {
			extra = append(extra, header)
		}
	}

	if len(missing) == 0 && len(extra) <= constants.MaxExtraHeaders {
		return nil
	}
	return &HeaderMismatch{Missing: missing, Extra: extra}
}
