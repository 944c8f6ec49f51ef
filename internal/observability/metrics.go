package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// File load outcomes used as the status label of FilesLoadedTotal.
const (
	FileStatusOK         = "ok"
	FileStatusPartial    = "partial"
	FileStatusUnreadable = "unreadable"
)

// Report outcomes used as the status label of ReportsTotal.
const (
	ReportStatusOK     = "ok"
	ReportStatusNoData = "no_data"
	ReportStatusError  = "error"
)

var (
	registry *prometheus.Registry

	// Files attempted by the directory loader. Watch for: partial/unreadable files in a data drop.
	FilesLoadedTotal *prometheus.CounterVec

	// Readings stored from data lines.
	ReadingsParsedTotal prometheus.Counter

	// Data lines dropped for having fewer fields than the header.
	RowsSkippedTotal prometheus.Counter

	// Parse time per file. Watch for: outliers (oversized or corrupt files).
	FileParseDuration prometheus.Histogram

	// Reports produced, by kind and outcome.
	ReportsTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	FilesLoadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filesLoadedTotal",
			Help: "Total number of data files attempted, by outcome",
		},
		[]string{"status"},
	)
	ReadingsParsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "readingsParsedTotal",
			Help: "Total number of readings parsed from data files",
		},
	)
	RowsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rowsSkippedTotal",
			Help: "Total number of data lines skipped for having fewer fields than the header",
		},
	)
	FileParseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fileParseDurationSeconds",
			Help:    "Time to parse one data file in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .5},
		},
	)
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportsTotal",
			Help: "Total number of reports requested, by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	registry.MustRegister(
		FilesLoadedTotal, ReadingsParsedTotal, RowsSkippedTotal, FileParseDuration,
		ReportsTotal,
	)
}

// RecordFileLoaded records the outcome of loading one file.
func RecordFileLoaded(status string, readings, skipped int, d time.Duration) {
	FilesLoadedTotal.WithLabelValues(status).Inc()
	ReadingsParsedTotal.Add(float64(readings))
	RowsSkippedTotal.Add(float64(skipped))
	if status != FileStatusUnreadable {
		FileParseDuration.Observe(d.Seconds())
	}
}

// RecordReport records one report outcome. kind is the report's flag name.
func RecordReport(kind, status string) {
	ReportsTotal.WithLabelValues(kind, status).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for collection by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
