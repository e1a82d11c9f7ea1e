// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors of the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	LoginSucceeded  = "success"
	LoginRejected   = "rejected"
	LoginSuspended  = "suspended"
	LoginUnverified = "unverified"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Logins          *prometheus.CounterVec
	RiotRequests    *prometheus.CounterVec
}

// New creates and registers the collectors on registerer.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nooblol_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),

		RiotRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nooblol_riot_requests_total",
			Help: "Riot API calls by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
	}
}

// IncLogin counts one login attempt. Safe on a nil receiver.
func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// IncRiot counts one Riot API call. Safe on a nil receiver.
func (m *Metrics) IncRiot(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.RiotRequests.WithLabelValues(endpoint, outcome).Inc()
}
