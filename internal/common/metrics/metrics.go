// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeNoResults = "no_results"
	OutcomeFailed    = "failed"
	OutcomeStatic    = "static"
)

var (
	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_action_invocations_total",
			Help: "Total number of action invocations by search outcome",
		},
		[]string{"transport", "outcome"},
	)

	QuerySourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_action_query_source_total",
			Help: "Where the resolved query was found in the event",
		},
		[]string{"source"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_action_search_duration_seconds",
			Help:    "Duration of the outbound search call in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	MissingEnvelopeFieldsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_action_missing_envelope_fields_total",
			Help: "Invocations where actionGroup, apiPath or httpMethod was absent",
		},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)
