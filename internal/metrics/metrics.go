package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_fetch_total",
		Help: "Completed acquisitions by winning source (live, snapshot, none)",
	}, []string{"source"})

	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_source_errors_total",
		Help: "Read failures per source",
	}, []string{"source"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_hits_total",
		Help: "Acquisitions served from the memoized snapshot",
	})

	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_invalidations_total",
		Help: "Manual refreshes that dropped the memoized snapshot",
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_fetch_duration_seconds",
		Help:    "Latency of non-cached acquisitions",
		Buckets: prometheus.DefBuckets,
	})

	RowsDisplayed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_rows_total",
		Help: "Row count of the most recent acquisition",
	})
)
