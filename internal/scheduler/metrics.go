package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_ai_requests_total",
			Help: "Total number of requests to the AI scheduling API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_ai_request_duration_seconds",
			Help:    "Histogram of AI scheduling API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptChars = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_ai_prompt_chars",
			Help:    "Histogram of rendered prompt sizes in characters.",
			Buckets: prometheus.ExponentialBuckets(512, 2, 10),
		},
		[]string{"model"},
	)
	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_fallbacks_total",
			Help: "Total number of schedules produced by the deterministic fallback, partitioned by reason.",
		},
		[]string{"reason"},
	)
)
