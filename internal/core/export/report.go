// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package export sends filtered attendance lists as CSV attachments.

The console posts the rows it currently shows together with the column labels
and the record keys to print. [Build] turns that into a [Report]; a [Sink]
delivers it. Nothing is read from storage.
*/
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// SerialColumn is the label of the leading row-number column.
const SerialColumn = "अ. क्र."

// SpecialSanghatan is reported under its own name instead of the prant.
const SpecialSanghatan = "स्वदेशी जागरण मंच"

// AttachmentName is the file name of the CSV attachment.
const AttachmentName = "user_list.csv"

// Request is the body of the export form.
//
// Columns holds the display labels and starts with the serial label, so
// Columns[i+1] labels Keys[i].
type Request struct {
	Name      string           `json:"name"`
	Date      string           `json:"date"`
	Year      string           `json:"year"`
	Rows      []map[string]any `json:"filteredData"`
	Prant     string           `json:"prant"`
	Sanghatan string           `json:"sanghatan"`
	Columns   []string         `json:"columns"`
	Keys      []string         `json:"userDataKeys"`
}

// Report is a rendered export ready for delivery.
type Report struct {
	Subject    string
	Body       string
	Filename   string
	Attachment []byte
}

// DetailName picks the organisation a report is titled after.
func DetailName(prant, sanghatan string) string {
	if strings.TrimSpace(sanghatan) == SpecialSanghatan {
		return SpecialSanghatan
	}
	return prant
}

/*
Build renders the attachment and message of a request.

Returns:
  - *Report: Subject, plain-text body and CSV attachment
  - error: CSV encoding failures
*/
func Build(request Request) (*Report, error) {
	attachment, err := Render(request.Columns, request.Keys, request.Rows)
	if err != nil {
		return nil, err
	}

	detail := DetailName(request.Prant, request.Sanghatan)

	var body strings.Builder
	body.WriteString("नमस्ते,\n")
	fmt.Fprintf(&body, "यह रही %s की सूची:\n", detail)
	fmt.Fprintf(&body, "नाम: %s\n", request.Name)
	fmt.Fprintf(&body, "तारीख: %s\n", request.Date)
	fmt.Fprintf(&body, "वर्ष: %s\n\n", request.Year)
	body.WriteString("कृपया अटैचमेंट देखें।\n")

	return &Report{
		Subject:    fmt.Sprintf("(%s) सूची रिपोर्ट", detail),
		Body:       body.String(),
		Filename:   AttachmentName,
		Attachment: attachment,
	}, nil
}

/*
Render writes rows as CSV with a leading serial column.

Parameters:
  - columns: []string (labels; columns[0] is replaced by [SerialColumn])
  - keys: []string (row keys, in column order)
  - rows: []map[string]any

Returns:
  - []byte: UTF-8 CSV, header line first
  - error: Writer failures
*/
func Render(columns, keys []string, rows []map[string]any) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	header := make([]string, 0, len(keys)+1)
	header = append(header, SerialColumn)
	for i, key := range keys {
		label := key
		if i+1 < len(columns) && columns[i+1] != "" {
			label = columns[i+1]
		}
		header = append(header, label)
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		record := make([]string, 0, len(keys)+1)
		record = append(record, strconv.Itoa(i+1))
		for _, key := range keys {
			record = append(record, cell(row[key]))
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buffer.Bytes(), nil
}

func cell(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}
