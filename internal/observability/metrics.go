// Package observability holds the Prometheus metrics recorded during a run.
//
// refstats is a batch tool, so metrics are not scraped over HTTP; they are
// gathered from a private registry and written in the text exposition format
// to a file that node_exporter's textfile collector can pick up.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms for one refstats invocation.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead      *prometheus.CounterVec   // labels: stage
	RowsWritten   *prometheus.CounterVec   // labels: stage
	FilesWritten  *prometheus.CounterVec   // labels: stage
	ExcludedRows  prometheus.Counter       // rows dropped by the region rollup
	PagesFetched  *prometheus.CounterVec   // labels: league
	FetchErrors   *prometheus.CounterVec   // labels: league
	StageDuration *prometheus.HistogramVec // labels: stage
	LastRun       prometheus.Gauge
}

// NewMetrics creates all metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "rows_read_total",
			Help:      "Referee rows read from CSV inputs or scraped pages.",
		}, []string{"stage"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "rows_written_total",
			Help:      "Rows written to CSV outputs.",
		}, []string{"stage"}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "files_written_total",
			Help:      "Output files written (CSV and PNG).",
		}, []string{"stage"}),
		ExcludedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "region_excluded_rows_total",
			Help:      "Combined rows left out of the region rollup because their nationality is unmapped.",
		}),
		PagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "pages_fetched_total",
			Help:      "Referee table pages fetched, by competition.",
		}, []string{"league"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refstats",
			Name:      "fetch_errors_total",
			Help:      "Failed page fetch attempts, by competition.",
		}, []string{"league"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "refstats",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"stage"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "refstats",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the metrics file was written.",
		}),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsWritten,
		m.FilesWritten,
		m.ExcludedRows,
		m.PagesFetched,
		m.FetchErrors,
		m.StageDuration,
		m.LastRun,
	)

	return m
}

// Registry exposes the gatherer for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStage records how long stage took since start.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile stamps LastRun with now and writes all metrics to path.
func (m *Metrics) WriteTextfile(path string, now time.Time) error {
	m.LastRun.Set(float64(now.Unix()))
	return prometheus.WriteToTextfile(path, m.registry)
}
