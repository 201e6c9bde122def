package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalysesTotal counts pipeline runs by final category.
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wefix",
		Subsystem: "pipeline",
		Name:      "analyses_total",
		Help:      "Total number of issue analyses, labeled by final category.",
	}, []string{"category"})

	// AnalysisDurationSeconds is end-to-end pipeline time per request.
	AnalysisDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wefix",
		Subsystem: "pipeline",
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end time to run one issue analysis.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	// IntentsTotal counts chat messages by routed intent.
	IntentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wefix",
		Subsystem: "chat",
		Name:      "intents_total",
		Help:      "Total number of chat messages routed, labeled by intent.",
	}, []string{"intent"})

	// GeocodeErrorTotal counts failed geocoding lookups.
	GeocodeErrorTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wefix",
		Subsystem: "pipeline",
		Name:      "geocode_error_total",
		Help:      "Total number of geocoding lookups that failed.",
	})

	// ImageFallbackTotal counts image classifications answered by the
	// fixed fallback result.
	ImageFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wefix",
		Subsystem: "pipeline",
		Name:      "image_fallback_total",
		Help:      "Total number of image classifications that used the fallback result.",
	})

	// PublishErrorTotal counts failed event publishes.
	PublishErrorTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wefix",
		Subsystem: "events",
		Name:      "publish_error_total",
		Help:      "Total number of event publish errors.",
	})
)

// Register registers service metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalysesTotal,
			AnalysisDurationSeconds,
			IntentsTotal,
			GeocodeErrorTotal,
			ImageFallbackTotal,
			PublishErrorTotal,
		)
	})
}
