package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TableFetches records live sheet fetches by result (success|failure).
	TableFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lockquests_table_fetches_total",
			Help: "Total number of live spreadsheet fetches",
		},
		[]string{"result"},
	)

	// CacheLookups counts snapshot cache reads by outcome (hit|miss|error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lockquests_cache_lookups_total",
			Help: "Total number of snapshot cache lookups",
		},
		[]string{"result"},
	)

	// PhotoProbes counts photo existence probes by outcome (found|missing|error).
	PhotoProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lockquests_photo_probes_total",
			Help: "Total number of photo existence probes",
		},
		[]string{"result"},
	)

	// RoomsLoaded tracks the size of the most recently loaded room set.
	RoomsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lockquests_rooms_loaded",
			Help: "Number of rooms in the last successful load",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lockquests_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
