// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paycast_predictions_served_total",
		Help: "Number of predictions returned to callers",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paycast_cache_hits_total",
		Help: "Requested ids answered straight from the prediction cache",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paycast_cache_misses_total",
		Help: "Requested ids that had to be recomputed",
	})

	Retrains = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paycast_retrains_total",
		Help: "Full model retrains triggered by the stale threshold",
	})

	ColdStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paycast_cold_starts_total",
		Help: "Times the model had to be loaded or trained from scratch",
	})

	TrainingRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paycast_training_rows",
		Help: "Rows used by the most recent training",
	})

	CachedEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paycast_cached_entries",
		Help: "Entries currently held in the prediction cache",
	})
)
