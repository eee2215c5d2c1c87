package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// -----------------------------------------------------------------------------
// Prometheus instrumentation, exposed on /metrics by the server.
// -----------------------------------------------------------------------------

var (
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rsi_tracker_fetches_total",
		Help: "Data fetches by flow (batch or symbols) and outcome.",
	}, []string{"flow", "outcome"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsi_tracker_cache_hits_total",
		Help: "Requests answered from a same-day cache entry.",
	})

	CacheFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsi_tracker_cache_fallbacks_total",
		Help: "Requests served stale cached data after a fetch failure or offline probe.",
	})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rsi_tracker_fetch_duration_seconds",
		Help:    "Wall time of remote fetches by flow.",
		Buckets: prometheus.DefBuckets,
	}, []string{"flow"})

	TrackedSymbols = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rsi_tracker_tracked_symbols",
		Help: "Number of symbols currently tracked.",
	})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rsi_tracker_ws_clients",
		Help: "Connected websocket clients.",
	})
)
