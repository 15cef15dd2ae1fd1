// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/core/reference/referencetest"
	"github.com/taibuivan/sabha/pkg/uuidv7"
)

func newTestHandler(t *testing.T) (http.Handler, *referencetest.Memory) {
	t.Helper()
	store := referencetest.New()
	service := reference.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return reference.NewHandler(service).Routes(), store
}

func TestHandler_List(t *testing.T) {
	router, store := newTestHandler(t)
	store.Seed(reference.Star, "क्षेत्र", "अ. भा.")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stars", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []reference.Entity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "अ. भा.", body.Data[0].Name)
}

func TestHandler_Dropdowns(t *testing.T) {
	router, store := newTestHandler(t)
	store.Seed(reference.Sanghatan, "स्वदेशी जागरण मंच")
	store.Seed(reference.Star, "क्षेत्र", "गतिविधि")
	store.Deactivate(reference.Star, "गतिविधि")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/all", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string][]reference.Entity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Data, 6)
	assert.Len(t, body.Data["sanghatans"], 1)
	assert.Empty(t, body.Data["prants"])

	stars := body.Data["stars"]
	require.Len(t, stars, 2)
	active := map[string]bool{}
	for _, star := range stars {
		active[star.Name] = star.Active
	}
	assert.Equal(t, map[string]bool{"क्षेत्र": true, "गतिविधि": false}, active)
}

func TestHandler_Errors(t *testing.T) {
	router, _ := newTestHandler(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown_type", "/districts", http.StatusBadRequest},
		{"bad_id", "/stars/abc", http.StatusBadRequest},
		{"missing_row", "/stars/" + uuidv7.New(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandler_LegacyRoutes(t *testing.T) {
	store := referencetest.New()
	service := reference.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	reference.NewHandler(service).LegacyRoutes(router, router)

	store.Seed(reference.Prant, "महाकौशल", "मालवा")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/prants", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var prants []reference.Entity
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &prants))
	assert.Len(t, prants, 2)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/all-dropdowns", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var dropdowns map[string][]reference.Entity
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dropdowns))
	assert.Len(t, dropdowns["prants"], 2)
}
