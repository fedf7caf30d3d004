package sourcing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grove",
			Name:      "sourcing_cycles_total",
			Help:      "Sourcing cycles run, by result.",
		},
		[]string{"result"},
	)

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "grove",
		Name:      "sourcing_cycle_duration_seconds",
		Help:      "Wall time of a sourcing cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	staleDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "stale_nodes_deleted_total",
		Help:      "Nodes deleted by the staleness sweep.",
	})

	ingestionLines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grove",
			Name:      "ingestion_lines_total",
			Help:      "Streaming ingestion lines, by result.",
		},
		[]string{"result"},
	)
)
