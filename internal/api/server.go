// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Two route trees are served. /api/v1 is the versioned surface; /api/admin keeps
the paths and bare response bodies the existing admin console calls.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/sabha/internal/core/admin"
	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/dashboard"
	"github.com/taibuivan/sabha/internal/core/export"
	"github.com/taibuivan/sabha/internal/core/ingest"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/metrics"
	"github.com/taibuivan/sabha/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Reference  *reference.Handler
	Attendance *attendance.Handler
	Upload     *ingest.Handler
	Dashboard  *dashboard.Handler
	Export     *export.Handler
	Admin      *admin.Handler
}

// Options carries the non-handler dependencies of the router.
type Options struct {
	Port     string
	Verifier middleware.TokenVerifier
	Metrics  *metrics.Metrics
	Limiter  *middleware.RateLimiter
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(log *slog.Logger, options Options, h Handlers) *Server {
	r := NewRouter(log, options, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + options.Port,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding it to a listener.
func NewRouter(log *slog.Logger, options Options, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	if options.Metrics != nil {
		r.Use(middleware.Instrument(options.Metrics))
	}
	if options.Limiter != nil {
		r.Use(options.Limiter.Handler)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(options.Verifier))

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if options.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", options.Metrics.Handler())
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/reference", h.Reference.Routes())

		api.Group(func(private chi.Router) {
			private.Use(middleware.RequireAuth)
			private.Mount("/attendance", h.Attendance.Routes())
			private.Mount("/upload", h.Upload.Routes())
			private.Mount("/dashboard", h.Dashboard.Routes())
			private.Mount("/export", h.Export.Routes())
			private.Route("/admin", h.Admin.Register)
		})
	})

	// # Console API
	// Paths of the existing admin console. Only the prant and sanghatan lists are public.
	r.Route("/api/admin", func(console chi.Router) {
		console.Group(func(private chi.Router) {
			private.Use(middleware.RequireAuth)
			h.Reference.LegacyRoutes(console, private)
			h.Attendance.LegacyRoutes(private)
			h.Dashboard.LegacyRoutes(private)
			h.Export.LegacyRoutes(private)
			h.Admin.Register(private)
			private.Mount("/upload", h.Upload.Routes())
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
