// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/nooblol/internal/board/article"
	"github.com/taibuivan/nooblol/internal/board/category"
	"github.com/taibuivan/nooblol/internal/board/reply"
	"github.com/taibuivan/nooblol/internal/platform/config"
	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/internal/platform/middleware"
	"github.com/taibuivan/nooblol/internal/summoner"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/internal/users/admin"
	"github.com/taibuivan/nooblol/internal/users/letter"
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
	// Liveness is the /health handler. It answers 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when every dependency is healthy.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry.
	Metrics http.Handler

	// Account handles signup, login and profile routes.
	Account *account.Handler

	// Admin handles member management.
	Admin *admin.Handler

	// Letter handles private messages.
	Letter *letter.Handler

	// Board handles categories and boards.
	Board *category.Handler

	// Article handles articles and votes.
	Article *article.Handler

	// Reply handles article comments.
	Reply *reply.Handler

	// Summoner handles Riot lookups.
	Summoner *summoner.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	sessions middleware.SessionResolver,
	collectors *metrics.Metrics,
	h Handlers,
) *Server {
	r := NewRouter(context, cfg, log, sessions, collectors, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	sessions middleware.SessionResolver,
	collectors *metrics.Metrics,
	h Handlers,
) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(collectors))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(sessions, cfg.SessionCookieSecure))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/user", h.Account.Routes())
		api.Mount("/admin", h.Admin.Routes())
		api.Mount("/letter", h.Letter.Routes())
		api.Mount("/board", h.Board.Routes())
		api.Route("/article", func(articles chi.Router) {
			articles.Mount("/reply", h.Reply.Routes())
			articles.Mount("/", h.Article.Routes())
		})
		api.Mount("/summoner", h.Summoner.Routes())
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
