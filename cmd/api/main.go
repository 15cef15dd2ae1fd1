// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Sabha HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/sabha/internal/api"
	"github.com/taibuivan/sabha/internal/core/admin"
	"github.com/taibuivan/sabha/internal/core/attendance"
	"github.com/taibuivan/sabha/internal/core/dashboard"
	"github.com/taibuivan/sabha/internal/core/export"
	"github.com/taibuivan/sabha/internal/core/ingest"
	"github.com/taibuivan/sabha/internal/core/reference"
	"github.com/taibuivan/sabha/internal/platform/config"
	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/metrics"
	"github.com/taibuivan/sabha/internal/platform/middleware"
	"github.com/taibuivan/sabha/internal/platform/migration"
	pgstore "github.com/taibuivan/sabha/internal/platform/postgres"
	redisstore "github.com/taibuivan/sabha/internal/platform/redis"
	"github.com/taibuivan/sabha/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("mail_enabled", cfg.MailEnabled()),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Up(), "run migrations")

	// ── 6. Security & Metrics ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	recorder := metrics.New()

	// Lives for the whole process; cancelled after shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()
	limiter := middleware.NewRateLimiter(rootCtx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	referenceRepository := reference.NewPostgresRepository(pool)
	cachedLookup := reference.NewRedisLookup(rdb, referenceRepository, cfg.ReferenceCacheTTL, log, recorder)
	directory := reference.NewDirectory(cachedLookup, recorder)
	referenceService := reference.NewService(referenceRepository, log)

	attendanceRepository := attendance.NewPostgresRepository(pool)
	attendanceService := attendance.NewService(attendanceRepository, log, time.Now)

	pipeline := ingest.NewPipeline(directory, attendanceRepository, log, recorder)
	engine := dashboard.NewEngine(directory, attendanceRepository, log, recorder)

	var sink export.Sink = export.DisabledSink{}
	if cfg.MailEnabled() {
		smtpSink, err := export.NewSMTPSink(export.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			To:       cfg.MailTo,
		})
		must(log, err, "initialize smtp sink")
		sink = smtpSink
	}
	exportService := export.NewService(sink, log, recorder)

	adminService := admin.NewService(admin.NewPostgresRepository(pool), log, time.Now)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Reference:  reference.NewHandler(referenceService),
		Attendance: attendance.NewHandler(attendanceService),
		Upload:     ingest.NewHandler(pipeline, cfg.UploadMaxBytes),
		Dashboard:  dashboard.NewHandler(engine),
		Export:     export.NewHandler(exportService),
		Admin:      admin.NewHandler(adminService),
	}

	server := api.NewServer(log, api.Options{
		Port:     cfg.ServerPort,
		Verifier: tokens,
		Metrics:  recorder,
		Limiter:  limiter,
	}, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
