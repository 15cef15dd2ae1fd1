// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ingest implements bulk CSV ingestion of attendance records.

Architecture:

  - Scanner: lazy row-by-row reader that normalizes keys and values.
  - CheckHeaders: the structural contract of a population, checked once.
  - RowValidator: per-row issue collection against the reference directory.
  - Pipeline: validate every row, then commit all rows sequentially or none.

The pipeline is all-or-nothing. A single invalid row rejects the batch and every
issue of every row is reported together.
*/
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/sabha/pkg/slice"
)

// Row is one data line keyed by normalized column name. Values are trimmed.
type Row map[string]string

// Scanner reads a CSV payload one row at a time.
type Scanner struct {
	reader *csv.Reader
	header []string
	line   int
}

// NewScanner wraps r. Rows may be ragged; quotes are parsed leniently.
func NewScanner(r io.Reader) *Scanner {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	return &Scanner{reader: reader}
}

// Header reads and normalizes the header line. It returns [io.EOF] for an empty payload.
func (scanner *Scanner) Header() ([]string, error) {
	if scanner.header != nil {
		return scanner.header, nil
	}

	record, err := scanner.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	if len(record) > 0 {
		record[0] = strings.TrimPrefix(record[0], "\ufeff")
	}
	scanner.header = slice.Map(record, NormalizeKey)
	return scanner.header, nil
}

// Next returns the next data row, or [io.EOF] after the last one.
//
// Missing trailing cells read as blank; cells beyond the header are dropped.
// When a column name repeats, the rightmost cell wins.
func (scanner *Scanner) Next() (Row, error) {
	header, err := scanner.Header()
	if err != nil {
		return nil, err
	}

	record, err := scanner.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read row %d: %w", scanner.line+1, err)
	}
	scanner.line++

	row := make(Row, len(header))
	for i, key := range header {
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		row[key] = value
	}
	return row, nil
}

// Line is the number of data rows returned so far.
func (scanner *Scanner) Line() int {
	return scanner.line
}

// NormalizeKey strips surrounding quote characters and whitespace, then lowercases.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `'"`)
	return strings.ToLower(strings.TrimSpace(key))
}
