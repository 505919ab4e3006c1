package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vulnview_guarded_ops_started_total",
			Help: "Total number of guarded operation passes started",
		},
		[]string{"op"},
	)

	opsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vulnview_guarded_ops_completed_total",
			Help: "Total number of guarded operation passes completed",
		},
		[]string{"op", "status"}, // ok, error
	)

	opsCoalesced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vulnview_guarded_ops_coalesced_total",
			Help: "Requests replaced in the pending slot while a pass was in flight",
		},
		[]string{"op"},
	)

	opDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vulnview_guarded_op_duration_seconds",
			Help:    "Duration of guarded operation passes in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"op"},
	)
)
