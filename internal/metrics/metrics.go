// Package metrics holds the Prometheus instruments shared across the site.
// Collectors register with the global registry at import time, so pulling the
// package into cmd/web is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SubmissionTotal counts form submissions by form id and outcome:
	// accepted, rejected (field errors), or error (storage/unknown form).
	SubmissionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submission_total",
			Help: "Form submissions by form id and outcome.",
		}, []string{"form", "result"})

	// SchemaSeedTotal counts first-load seedings of built-in schemas.
	SchemaSeedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "form_schema_seed_total",
			Help: "Built-in form schemas seeded on first load.",
		})

	// SchemaSaveTotal counts admin schema saves that reached the store.
	SchemaSaveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "form_schema_save_total",
			Help: "Form schema saves persisted by the back-office.",
		})

	// HTTPRequestTotal counts served requests by method and status class.
	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "HTTP requests served, by method and status.",
		}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		SubmissionTotal,
		SchemaSeedTotal,
		SchemaSaveTotal,
		HTTPRequestTotal,
	)
}
