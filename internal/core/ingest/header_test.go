// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/ingest"
)

/*
TestCheckHeaders covers the acceptance rules of the header contract.
*/
func TestCheckHeaders(t *testing.T) {
	populationSchema := attendance.ProvinceOrganizer.Schema()
	expected := populationSchema.ExpectedColumns()

	without := func(column string) []string {
		return slices.DeleteFunc(slices.Clone(expected), func(c string) bool { return c == column })
	}
	with := func(extra ...string) []string {
		return append(slices.Clone(expected), extra...)
	}

	tests := []struct {
		name    string
		headers []string
		missing []string
		extra   []string
		ok      bool
	}{
		{"exact", expected, nil, nil, true},
		{"reordered", slices.Concat(expected[5:], expected[:5]), nil, nil, true},
		{"five_extras", with("mobile_no_1", "mobile_no_2", "a", "b", "c"), nil, nil, true},
		{"six_extras", with("mobile_no_1", "mobile_no_2", "a", "b", "c", "d"), []string{}, []string{"mobile_no_1", "mobile_no_2", "a", "b", "c", "d"}, false},
		{"missing_email", without("email"), []string{"email"}, []string{}, false},
		{"foreign_population", attendance.GeneralAssembly.Schema().ExpectedColumns(),
			[]string{"gatividhi_toli_baithak", "a_b_baithak", "prant_pracharak_baithak", "kshetra_pracharak_baithak"},
			[]string{"a_b_karykarini_baithak", "kshetra_k_p_baithak", "prant_k_p_baithak", "karyakari_madal", "pratinidhi_sabha", "prant_p_baithak", "kshetra_p_baithak", "palak_adhikari_baithak"},
			false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mismatch := ingest.CheckHeaders(populationSchema, tt.headers)
			if tt.ok {
				assert.Nil(t, mismatch)
				return
			}
			require.NotNil(t, mismatch)
			assert.Equal(t, tt.missing, mismatch.Missing)
			assert.Equal(t, tt.extra, mismatch.Extra)
		})
	}
}
