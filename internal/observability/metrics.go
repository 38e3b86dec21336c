package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline.
type Metrics struct {
	ObservationsConsumed prometheus.Counter
	AssessmentsProduced  prometheus.Counter
	TransformErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Engine output metrics.
	RiskTierAssessments *prometheus.CounterVec // label: tier={TSTM,...,HIGH}
	EstimatedPeakWind   prometheus.Histogram   // mph, est_max of each assessment
}

// NewMetrics creates all pipeline metrics and registers them with the default
// Prometheus registry. Call exactly once from the composition root; the
// returned handle is the only way to reach the collectors.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ObservationsConsumed,
		m.AssessmentsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.RiskTierAssessments,
		m.EstimatedPeakWind,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "twisted_calc",
			Name:      "observations_consumed_total",
			Help:      "Total observation messages read from the source topic.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "twisted_calc",
			Name:      "assessments_produced_total",
			Help:      "Total assessment messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "twisted_calc",
			Name:      "transform_errors_total",
			Help:      "Total observation messages that failed to decode.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "twisted_calc",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "twisted_calc",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "twisted_calc",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RiskTierAssessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twisted_calc",
			Name:      "risk_tier_assessments_total",
			Help:      "Assessments produced by convective risk tier.",
		}, []string{"tier"}),
		EstimatedPeakWind: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "twisted_calc",
			Name:      "estimated_peak_wind_mph",
			Help:      "Upper bound of each assessment's estimated wind range.",
			Buckets:   []float64{0, 85, 110, 135, 165, 200, 250, 300, 373},
		}),
	}
}
