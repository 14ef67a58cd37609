package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phishguard_submissions_total",
		Help: "Total number of URLs submitted for classification.",
	})
	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phishguard_verdicts_total",
		Help: "Classification verdicts by label.",
	}, []string{"label"})
	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phishguard_pipeline_failures_total",
		Help: "Pipeline failures by error kind.",
	}, []string{"kind"})
	suggestionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phishguard_suggestions_total",
		Help: "Total number of legitimate-site suggestions returned.",
	})
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phishguard_events_published_total",
		Help: "Total number of prediction events published to redis.",
	})
	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phishguard_events_failed_total",
		Help: "Total number of prediction events that failed to publish.",
	})
	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phishguard_pipeline_duration_seconds",
		Help:    "Duration of a full classify-and-record call.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	})
)
