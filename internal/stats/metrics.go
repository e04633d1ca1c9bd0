package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shadle_stats_task_runs_total",
		Help: "Completed stats task runs by task name and result.",
	}, []string{"task", "result"})

	taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shadle_stats_task_duration_seconds",
		Help:    "Wall-clock duration of stats task runs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
)
