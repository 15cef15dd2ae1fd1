// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/attendance/attendancetest"
	"github.com/taibuivan/sabha/internal/core/dashboard"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/core/reference/referencetest"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

type fixture struct {
	refs   *referencetest.Memory
	store  *attendancetest.Memory
	engine *dashboard.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	refs := referencetest.New()
	refs.Seed(reference.Star, "क्षेत्र", "प्रांत", "अ. भा.", "विविध क्षेत्र")
	refs.Seed(reference.Prakar, "विविध क्षेत्र", "रा. स्व. संघ")
	refs.Seed(reference.Dayitva,
		"मा. क्षेत्र संघचालक", "क्षेत्र प्रचारक", "सह क्षेत्र प्रचारक", "प्रांत प्रचारक", "प्रतिनिधि",
	)

	store := attendancetest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := dashboard.NewEngine(reference.NewDirectory(refs, nil), store, logger, nil)

	return &fixture{refs: refs, store: store, engine: engine}
}

type seedRow struct {
	year    int
	star    string
	prakar  string
	dayitva string
	gender  attendance.Gender
	flags   []string
}

func (f *fixture) add(t *testing.T, population attendance.Population, rows ...seedRow) {
	t.Helper()
	for _, row := range rows {
		gender := row.gender
		if gender == "" {
			gender = attendance.Male
		}
		flags := make(map[string]bool)
		for _, flag := range row.flags {
			flags[flag] = true
		}
		require.NoError(t, f.store.Insert(context.Background(), population, &attendance.Record{
			ID:         uuidv7.New(),
			Name:       "सदस्य",
			StarID:     f.refs.MustID(reference.Star, row.star),
			PrakarID:   f.refs.MustID(reference.Prakar, row.prakar),
			DayitvaID:  f.refs.MustID(reference.Dayitva, row.dayitva),
			Gender:     gender,
			Attendance: attendance.Present,
			Year:       row.year,
			Flags:      flags,
		}))
	}
}

/*
TestEngine_EmptyYear verifies that every metric is present and zero.
*/
func TestEngine_EmptyYear(t *testing.T) {
	f := newFixture(t)
	f.add(t, attendance.GeneralAssembly, seedRow{year: 2023, star: "प्रांत", dayitva: "प्रतिनिधि"})

	for _, population := range attendance.Populations {
		t.Run(population.String(), func(t *testing.T) {
			summary, err := f.engine.Compute(context.Background(), population, 2024)
			require.NoError(t, err)

			taxonomy := dashboard.Taxonomy(population)
			require.Len(t, summary, len(taxonomy))
			for _, metric := range taxonomy {
				value, ok := summary[metric.Key]
				assert.True(t, ok, metric.Key)
				assert.Zero(t, value, metric.Key)
			}
		})
	}
}

/*
TestEngine_GeneralAssembly exercises the set, pair, gender and flag metrics.
*/
func TestEngine_GeneralAssembly(t *testing.T) {
	f := newFixture(t)
	f.add(t, attendance.GeneralAssembly,
		seedRow{year: 2024, star: "प्रांत", prakar: "रा. स्व. संघ", dayitva: "प्रांत प्रचारक", flags: []string{"pratinidhi_sabha"}},
		seedRow{year: 2024, star: "क्षेत्र", prakar: "रा. स्व. संघ", dayitva: "क्षेत्र प्रचारक", gender: attendance.Female},
		seedRow{year: 2024, star: "विविध क्षेत्र", prakar: "विविध क्षेत्र", dayitva: "प्रतिनिधि", flags: []string{"karyakari_madal"}},
		seedRow{year: 2024, star: "प्रांत", prakar: "रा. स्व. संघ", dayitva: "प्रतिनिधि"},
		seedRow{year: 2023, star: "प्रांत", prakar: "रा. स्व. संघ", dayitva: "प्रांत प्रचारक", flags: []string{"pratinidhi_sabha"}},
	)

	summary, err := f.engine.Compute(context.Background(), attendance.GeneralAssembly, 2024)
	require.NoError(t, err)

	assert.Equal(t, 4, summary["totalUsers"])
	assert.Equal(t, 2, summary["pracharakDataCount"])
	assert.Equal(t, 2, summary["pratinidhiDataCount"])
	assert.Equal(t, 0, summary["sanghachalakDataCount"])
	assert.Equal(t, 0, summary["sevaPramukhDataCount"])
	assert.Equal(t, 1, summary["vividhkshetraDataCount"])
	assert.Equal(t, 2, summary["prantShahaDataCount"])
	assert.Equal(t, 1, summary["femaleCount"])
	assert.Equal(t, 2, summary["baithakCount"])
	assert.Equal(t, 1, summary["karykariMandalBaithakCount"])
}

/*
TestEngine_SumOfSubroles checks that sum metrics add independent counts and
that an unknown sub-role contributes zero.
*/
func TestEngine_SumOfSubroles(t *testing.T) {
	f := newFixture(t)
	f.add(t, attendance.WorkingCouncil,
		seedRow{year: 2024, star: "क्षेत्र", dayitva: "मा. क्षेत्र संघचालक"},
		seedRow{year: 2024, star: "क्षेत्र", dayitva: "मा. क्षेत्र संघचालक"},
		seedRow{year: 2024, star: "क्षेत्र", dayitva: "क्षेत्र प्रचारक"},
		seedRow{year: 2024, star: "क्षेत्र", dayitva: "सह क्षेत्र प्रचारक"},
		seedRow{year: 2024, star: "क्षेत्र", dayitva: "सह क्षेत्र प्रचारक"},
		seedRow{year: 2024, star: "प्रांत", dayitva: "क्षेत्र प्रचारक"},
	)

	summary, err := f.engine.Compute(context.Background(), attendance.WorkingCouncil, 2024)
	require.NoError(t, err)

	// "मा. सह क्षेत्र संघचालक" is not a known dayitva.
	assert.Equal(t, 2, summary["kshtrasanchalkaTotal"])
	assert.Equal(t, 3, summary["kshetraPracharakTotal"])
	assert.Equal(t, 0, summary["prantkaryavahTotal"])
	assert.Equal(t, 6, summary["totalUsers"])
}

func TestEngine_ProvinceOrganizer(t *testing.T) {
	f := newFixture(t)
	f.add(t, attendance.ProvinceOrganizer,
		seedRow{year: 2025, star: "अ. भा.", dayitva: "प्रतिनिधि", flags: []string{"a_b_baithak"}},
		seedRow{year: 2025, star: "क्षेत्र", dayitva: "क्षेत्र प्रचारक", flags: []string{"a_b_baithak", "gatividhi_toli_baithak"}},
		seedRow{year: 2025, star: "प्रांत", dayitva: "प्रांत प्रचारक"},
	)

	summary, err := f.engine.Compute(context.Background(), attendance.ProvinceOrganizer, 2025)
	require.NoError(t, err)

	assert.Equal(t, 3, summary["totalUsers"])
	assert.Equal(t, 1, summary["a_b_adhikariTotal"])
	assert.Equal(t, 0, summary["gatividhiTotal"])
	assert.Equal(t, 1, summary["kshetraPracharkTotal"])
	assert.Equal(t, 1, summary["prantPracharkTotal"])
	assert.Equal(t, 2, summary["baithakShahsankhya"])
	assert.Equal(t, 2, summary["baithakShahSuchi"])
}

func TestEngine_ResolvesEachNameOnce(t *testing.T) {
	f := newFixture(t)

	definitions := []dashboard.Metric{
		dashboard.Star("a", "क्षेत्र"),
		dashboard.StarDayitva("b", "क्षेत्र", "क्षेत्र प्रचारक"),
		dashboard.DayitvaSet("c", "क्षेत्र प्रचारक", "प्रांत प्रचारक"),
	}
	_, err := f.engine.ComputeMetrics(context.Background(), attendance.GeneralAssembly, 2024, definitions)
	require.NoError(t, err)

	assert.Equal(t, int64(3), f.refs.Calls.Load())
}

func TestEngine_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.CountErr = errors.New("timeout")

	_, err := f.engine.Compute(context.Background(), attendance.WorkingCouncil, 2024)
	assert.ErrorContains(t, err, "timeout")
}

/*
TestTaxonomy_Consistency checks keys are unique and flags belong to the population.
*/
func TestTaxonomy_Consistency(t *testing.T) {
	sizes := map[attendance.Population]int{
		attendance.GeneralAssembly:   19,
		attendance.ProvinceOrganizer: 9,
		attendance.WorkingCouncil:    12,
	}

	for _, population := range attendance.Populations {
		t.Run(population.String(), func(t *testing.T) {
			taxonomy := dashboard.Taxonomy(population)
			assert.Len(t, taxonomy, sizes[population])

			seen := make(map[string]bool)
			for _, metric := range taxonomy {
				assert.False(t, seen[metric.Key], metric.Key)
				seen[metric.Key] = true

				for _, flag := range metric.Flags {
					assert.True(t, population.Schema().HasFlag(flag), flag)
				}
				if metric.Kind == dashboard.KindSum {
					assert.Len(t, metric.Terms, 2, metric.Key)
				}
			}
		})
	}
}

/*
TestTaxonomy_ConsoleKeys pins the exact response keys the admin console reads.
*/
func TestTaxonomy_ConsoleKeys(t *testing.T) {
	consoleKeys := map[attendance.Population][]string{
		attendance.GeneralAssembly: {
			"totalUsers", "sanghachalakDataCount", "karyvahakDataCount", "pracharakDataCount",
			"sharirikPramukDataCount", "baudhikPramukhDataCount", "sevaPramukhDataCount",
			"vyavasthaPramukhDataCount", "samparkPramukhDataCount", "pracharPramukhDataCount",
			"vibhagPramukhDataCount", "pratinidhiDataCount", "purvPrantPracharakDataCount",
			"nimarntritDataCount", "vividhkshetraDataCount", "prantShahaDataCount",
			"femaleCount", "baithakCount", "karykariMandalBaithakCount",
		},
		attendance.ProvinceOrganizer: {
			"totalUsers", "a_b_adhikariTotal", "gatividhiTotal", "kshetraPracharkTotal",
			"kshetraPracharkPramukhTotal", "prantPracharkTotal", "vividhKshetraTotal",
			"baithakShahsankhya", "baithakShahSuchi",
		},
		attendance.WorkingCouncil: {
			"totalUsers", "a_b_adhikariTotal", "kshetrakaryavah", "kshtrasanchalkaTotal",
			"kshetraPracharakTotal", "kshetraPracharakPramukhTotal", "prantkaryavahTotal",
			"prantsanghachalakTotal", "prantPracharak_total", "vividhKshetraTotal",
			"baithakShahsankhya", "baithakShahSuchi",
		},
	}

	for _, population := range attendance.Populations {
		t.Run(population.String(), func(t *testing.T) {
			f := newFixture(t)
			summary, err := f.engine.Compute(context.Background(), population, 2024)
			require.NoError(t, err)

			keys := make([]string, 0, len(summary))
			for key := range summary {
				keys = append(keys, key)
			}
			assert.ElementsMatch(t, consoleKeys[population], keys)
		})
	}
}
