// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/ctxutil"
	"github.com/taibuivan/sabha/internal/platform/middleware"
	"github.com/taibuivan/sabha/internal/platform/sec"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func okHandler(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
}

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "req-42", seen)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "10.0.0.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.4")
	assert.Equal(t, "198.51.100.4", middleware.RealIP(request))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := limiter.Handler(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "192.0.2.1:1000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Buckets are per client.
	assert.True(t, limiter.Allow("192.0.2.2"))
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discard)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestAuthorization(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleVividhKshetra)}}

	tests := []struct {
		name   string
		header string
		guard  func(http.Handler) http.Handler
		status int
	}{
		{"anonymous_passes_authenticate", "", func(next http.Handler) http.Handler { return next }, http.StatusOK},
		{"anonymous_blocked", "", middleware.RequireAuth, http.StatusUnauthorized},
		{"malformed_header", "Token valid", middleware.RequireAuth, http.StatusUnauthorized},
		{"bad_token", "Bearer nope", middleware.RequireAuth, http.StatusUnauthorized},
		{"authenticated", "Bearer valid", middleware.RequireAuth, http.StatusOK},
		{"role_met", "Bearer valid", middleware.RequireRole(sec.RoleUser), http.StatusOK},
		{"role_below", "Bearer valid", middleware.RequireRole(sec.RoleAdmin), http.StatusForbidden},
		{"role_anonymous", "", middleware.RequireRole(sec.RoleUser), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(verifier)(tt.guard(http.HandlerFunc(okHandler)))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
