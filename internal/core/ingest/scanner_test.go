// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/ingest"
)

/*
TestScanner_Normalization verifies key cleanup and value trimming.
*/
func TestScanner_Normalization(t *testing.T) {
	payload := "\ufeff\"Name\",' Star_ID ',email\n  रमेश  ,प्रांत\n"
	scanner := ingest.NewScanner(strings.NewReader(payload))

	header, err := scanner.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "star_id", "email"}, header)

	row, err := scanner.Next()
	require.NoError(t, err)
	assert.Equal(t, ingest.Row{"name": "रमेश", "star_id": "प्रांत", "email": ""}, row)
	assert.Equal(t, 1, scanner.Line())

	_, err = scanner.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestScanner_Empty(t *testing.T) {
	scanner := ingest.NewScanner(strings.NewReader(""))

	_, err := scanner.Header()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"name", "name"},
		{` "Gender" `, "gender"},
		{`''year''`, "year"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ingest.NormalizeKey(tt.input))
		})
	}
}
