// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the nooblol HTTP API server.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/nooblol/internal/api"
	"github.com/taibuivan/nooblol/internal/board/article"
	"github.com/taibuivan/nooblol/internal/board/category"
	"github.com/taibuivan/nooblol/internal/board/reply"
	"github.com/taibuivan/nooblol/internal/platform/config"
	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/internal/platform/migration"
	pgstore "github.com/taibuivan/nooblol/internal/platform/postgres"
	redisstore "github.com/taibuivan/nooblol/internal/platform/redis"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
	"github.com/taibuivan/nooblol/internal/summoner"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/internal/users/admin"
	"github.com/taibuivan/nooblol/internal/users/letter"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Shared infrastructure ──────────────────────────────────────────
	collectors := metrics.New(prometheus.DefaultRegisterer)
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL)

	mailTokens, err := sec.NewMailTokenService(cfg.MailTokenSecret, constants.MailTokenIssuer, cfg.MailTokenTTL)
	must(log, err, "initialize mail token service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := account.NewRepository(pool)
	accountService := account.NewService(
		userRepository,
		sessions,
		mailTokens,
		account.NewLogMailer(log),
		cfg.PublicBaseURL,
		collectors,
		log,
	)
	adminService := admin.NewService(userRepository, accountService, sessions, log)
	letterService := letter.NewService(letter.NewRepository(pool), userRepository, log)

	boardService := category.NewService(
		category.NewRepository(pool),
		category.NewRedisCache(rdb, cfg.BoardCacheTTL),
		log,
	)
	articleService := article.NewService(article.NewRepository(pool), boardService, log)
	replyService := reply.NewService(reply.NewRepository(pool), articleService, log)

	riotClient := summoner.NewRiotClient(cfg.RiotAPIDomain, cfg.RiotAPIKey, cfg.RiotTimeout, collectors)
	summonerService := summoner.NewService(summoner.NewRepository(pool), riotClient, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.Handler(),
		Account:   account.NewHandler(accountService, sessions.TTL(), cfg.SessionCookieSecure),
		Admin:     admin.NewHandler(adminService),
		Letter:    letter.NewHandler(letterService),
		Board:     category.NewHandler(boardService),
		Article:   article.NewHandler(articleService),
		Reply:     reply.NewHandler(replyService),
		Summoner:  summoner.NewHandler(summonerService),
	}

	server := api.NewServer(rootCtx, cfg, log, sessions, collectors, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
