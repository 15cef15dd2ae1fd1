// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered against an injected [prometheus.Registerer] so tests
can build isolated instances. Every recording method is safe on a nil [*Metrics],
which lets services run without instrumentation.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sabha"

// Metrics groups every collector of the API.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	uploads    *prometheus.CounterVec
	uploadRows *prometheus.CounterVec

	referenceLookups *prometheus.CounterVec

	dashboardDuration *prometheus.HistogramVec

	mailSent *prometheus.CounterVec
}

// New creates a [Metrics] bound to a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// Labels: method, route (chi pattern), status
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		// Labels: population, outcome (ok, header_mismatch, invalid, failed)
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "CSV uploads by population and outcome",
		}, []string{"population", "outcome"}),

		uploadRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_committed_total",
			Help:      "Attendance rows persisted through CSV uploads",
		}, []string{"population"}),

		// Labels: layer (memo, cache, store), result (hit, miss)
		referenceLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reference",
			Name:      "lookups_total",
			Help:      "Reference name lookups by layer and result",
		}, []string{"layer", "result"}),

		dashboardDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing one dashboard",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"population"}),

		// Labels: result (sent, failed)
		mailSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "mail_total",
			Help:      "Report e-mails by result",
		}, []string{"result"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// # Recording

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Upload records the outcome of a CSV upload and the rows it committed.
func (m *Metrics) Upload(population, outcome string, committed int) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(population, outcome).Inc()
	if committed > 0 {
		m.uploadRows.WithLabelValues(population).Add(float64(committed))
	}
}

// ReferenceLookup records a name lookup at the given layer.
func (m *Metrics) ReferenceLookup(layer string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.referenceLookups.WithLabelValues(layer, result).Inc()
}

// Dashboard records how long one dashboard took to compute.
func (m *Metrics) Dashboard(population string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dashboardDuration.WithLabelValues(population).Observe(elapsed.Seconds())
}

// Mail records a report delivery attempt.
func (m *Metrics) Mail(err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.mailSent.WithLabelValues(result).Inc()
}
