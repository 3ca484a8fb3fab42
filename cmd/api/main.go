// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the authorization gateway.
//  7. Start the realtime registry and relay.
//  8. Wire HTTP handlers.
//  9. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/blog"
	"github.com/taibuivan/inkwell/internal/gateway"
	"github.com/taibuivan/inkwell/internal/notification"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkwell/internal/platform/redis"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/realtime"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("realtime_relay", cfg.RealtimeRelay),
	)

	// Root context for background workers; cancelled after the HTTP server drains.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Use a 30s deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
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
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Authorization Gateway ─────────────────────────────────────────
	var verifier sec.Verifier = sec.NewSSOVerifier(cfg.SSOURL, cfg.SSOTimeout, nil)
	if cfg.SSORetries > 0 {
		verifier = &sec.RetryVerifier{Next: verifier, Attempts: cfg.SSORetries + 1, Delay: cfg.SSORetryDelay}
	}

	gate, err := gateway.New(cfg.GatewayConfig(), verifier, sec.NewClaimDecoder())
	must(log, err, "compile authorization policy")

	// ── 7. Realtime ───────────────────────────────────────────────────────
	registry := realtime.NewRegistry(log)

	var broadcaster realtime.Broadcaster = registry
	var relayReady func(ctx context.Context) error
	relayDone := make(chan struct{})
	if cfg.RealtimeRelay == config.RelayRedis {
		relay := realtime.NewRedisRelay(rdb, registry, log)
		broadcaster = relay
		relayReady = relay.Ready

		go func() {
			defer close(relayDone)
			if err := relay.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("realtime_relay_stopped", slog.Any("error", err))
			}
		}()
	} else {
		close(relayDone)
	}

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		CheckRelay: relayReady,
	}, log)

	notificationRepository := notification.NewRepository(pool)
	publisher := notification.NewPublisher(notificationRepository, broadcaster, cfg.PublishTimeout, log)
	notificationService := notification.NewService(notificationRepository, log)

	blogService := blog.NewService(
		blog.NewPostRepository(pool),
		blog.NewCommentRepository(pool),
		blog.NewLikeRepository(pool),
		publisher,
		log,
	)

	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Blog:         blog.NewHandler(blogService),
		Notification: notification.NewHandler(notificationService),
		Realtime: realtime.NewHandler(registry, broadcaster, realtime.HandlerConfig{
			OriginPatterns: cfg.WebsocketOrigins(),
			Buffer:         cfg.RealtimeBuffer,
		}, log),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, gate, handlers)

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

	exitCode := 0
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		exitCode = 1
	}

	// Websocket sessions, the relay and the rate limiter all stop with the root context.
	rootCancel()
	<-relayDone

	drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer drainCancel()
	if err := publisher.Close(drainCtx); err != nil {
		log.Error("publisher drain incomplete", slog.Any("error", err))
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String(constants.FieldApp, constants.AppName),
		slog.String(constants.FieldVersion, constants.AppVersion),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
