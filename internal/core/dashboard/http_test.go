// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/dashboard"
)

func newTestRouter(t *testing.T) (chi.Router, *fixture) {
	t.Helper()
	f := newFixture(t)
	handler := dashboard.NewHandler(f.engine)

	router := chi.NewRouter()
	router.Mount("/dashboard", handler.Routes())
	handler.LegacyRoutes(router)
	return router, f
}

func TestHandler_Dashboard(t *testing.T) {
	router, f := newTestRouter(t)
	f.add(t, attendance.WorkingCouncil, seedRow{year: 2024, star: "अ. भा.", dayitva: "प्रतिनिधि"})

	for _, path := range []string{"/dashboard/karyakari-mandal/2024", "/dashboard-data-karyakari-mandal/2024"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var summary map[string]int
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
		assert.Equal(t, 1, summary["totalUsers"])
		assert.Equal(t, 1, summary["a_b_adhikariTotal"])
		assert.Len(t, summary, len(dashboard.Taxonomy(attendance.WorkingCouncil)))
	}
}

func TestHandler_DashboardErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"unknown_type", "/dashboard/abkm/2024"},
		{"bad_year", "/dashboard/pratinidhi-sabha/20x4"},
		{"bad_legacy_year", "/dashboard-data/last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
