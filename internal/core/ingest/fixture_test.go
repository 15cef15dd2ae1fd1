// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/attendance/attendancetest"
	"github.com/taibuivan/sabha/internal/core/ingest"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/core/reference/referencetest"
	"github.com/taibuivan/sabha/internal/platform/metrics"
)

type fixture struct {
	refs     *referencetest.Memory
	store    *attendancetest.Memory
	pipeline *ingest.Pipeline
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	refs := referencetest.New()
	refs.Seed(reference.Star, "प्रांत", "क्षेत्र")
	refs.Seed(reference.Prakar, "रा. स्व. संघ")
	refs.Seed(reference.Sanghatan, "रा. स्व. संघ", "स्वदेशी जागरण मंच")
	refs.Seed(reference.Dayitva, "प्रांत प्रचारक", "प्रतिनिधि")
	refs.Seed(reference.Kshetra, "मध्य क्षेत्र")
	refs.Seed(reference.Prant, "महाकौशल", "मालवा")

	store := attendancetest.New()
	recorder := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	directory := reference.NewDirectory(refs, recorder)

	return &fixture{
		refs:     refs,
		store:    store,
		pipeline: ingest.NewPipeline(directory, store, logger, recorder),
		metrics:  recorder,
	}
}

// csvFor builds a payload with the expected header of population followed by rows.
// Each row lists the required cells in order; flag cells default to "0".
func csvFor(population attendance.Population, rows ...[]string) string {
	populationSchema := population.Schema()

	var builder strings.Builder
	builder.WriteString(strings.Join(populationSchema.ExpectedColumns(), ","))
	builder.WriteString("\n")

	for _, row := range rows {
		cells := append([]string(nil), row...)
		for len(cells) < len(populationSchema.ExpectedColumns()) {
			cells = append(cells, "0")
		}
		builder.WriteString(strings.Join(cells, ","))
		builder.WriteString("\n")
	}
	return builder.String()
}

// validRow returns a resolvable row; name distinguishes rows.
func validRow(name string) []string {
	return []string{
		name, "प्रांत", "रा. स्व. संघ", "रा. स्व. संघ", "प्रतिनिधि",
		"मध्य क्षेत्र", "महाकौशल", "जबलपुर", name + "@example.org", "M", "P", "2024",
	}
}
