// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/respond"
)

// Probe checks one dependency.
type Probe func(context context.Context) error

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase Probe

	// CheckCache pings the Redis client.
	CheckCache Probe
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready. Every probe runs concurrently under its own deadline.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	probes := []struct {
		name  string
		check Probe
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	var (
		mu      sync.Mutex
		results = make([]checkResult, 0, len(probes))
		isReady = true
	)

	// Probe failures are collected, never returned, so one failure does not cancel the others.
	var group errgroup.Group
	for _, probe := range probes {
		if probe.check == nil {
			continue
		}
		group.Go(func() error {
			probeContext, cancel := context.WithTimeout(request.Context(), constants.ReadinessTimeout)
			defer cancel()

			result := checkResult{Name: probe.name, IsOK: true}
			if err := probe.check(probeContext); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				handler.logger.Error("readiness_check_failed", slog.String("dependency", probe.name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, result)
			isReady = isReady && result.IsOK
			return nil
		})
	}
	_ = group.Wait()

	if !isReady {
		respond.JSON(writer, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"checks": results,
		})
		return
	}

	respond.OK(writer, map[string]any{
		"status": "ready",
		"checks": results,
	})
}
