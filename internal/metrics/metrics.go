package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RemindersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remsched_reminders_total",
			Help: "Reminder outcomes recorded per run, by outcome and reminder type",
		},
		[]string{"outcome", "type"}, // sent|failed , initial|followup-1|...
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remsched_runs_total",
			Help: "Scheduler runs by result",
		},
		[]string{"result"}, // ok|error
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "remsched_run_duration_seconds",
			Help:    "Wall-clock duration of one scheduler run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RemindersTotal,
		RunsTotal,
		RunDuration,
	)
}
