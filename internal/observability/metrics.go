package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// HURDAT2 ETL pipeline.
type Metrics struct {
	LinesScanned     prometheus.Counter
	HeadersParsed    prometheus.Counter
	RecordsAssembled prometheus.Counter
	LinesSkipped     prometheus.Counter
	TransformErrors  prometheus.Counter
	RowsLoaded       prometheus.Counter
	CountMismatches  *prometheus.CounterVec // label: expectation={expected,unexpected}
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LinesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "lines_scanned_total",
			Help:      "Total input lines read from the source file.",
		}),
		HeadersParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "headers_parsed_total",
			Help:      "Total storm header lines recognized.",
		}),
		RecordsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "records_assembled_total",
			Help:      "Total composite track-point records emitted by the assembler.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "lines_skipped_total",
			Help:      "Total lines that matched neither the header shape nor a declared data run.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "transform_errors_total",
			Help:      "Total normalization failures.",
		}),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "rows_loaded_total",
			Help:      "Total normalized track points written to the sink.",
		}),
		CountMismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "count_mismatches_total",
			Help:      "Declared-vs-observed entry count mismatches by expectation.",
		}, []string{"expectation"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hurdat2_etl",
			Name:      "pipeline_running",
			Help:      "1 while the pipeline is active, 0 when idle or finished.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurdat2_etl",
			Name:      "batch_size",
			Help:      "Number of records per assembled batch.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100, 200, 500},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurdat2_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch assemble-normalize-load cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
	}

	prometheus.MustRegister(
		m.LinesScanned,
		m.HeadersParsed,
		m.RecordsAssembled,
		m.LinesSkipped,
		m.TransformErrors,
		m.RowsLoaded,
		m.CountMismatches,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LinesScanned:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "lines_scanned_total"}),
		HeadersParsed:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "headers_parsed_total"}),
		RecordsAssembled:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "records_assembled_total"}),
		LinesSkipped:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "lines_skipped_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "transform_errors_total"}),
		RowsLoaded:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "rows_loaded_total"}),
		CountMismatches:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "count_mismatches_total"}, []string{"expectation"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hurdat2_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hurdat2_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hurdat2_etl", Name: "batch_processing_duration_seconds"}),
	}
}
