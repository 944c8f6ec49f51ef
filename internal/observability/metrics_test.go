package observability

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics_Usable verifies that every metric accepts the label values used by
// the loader and report service without panicking.
func TestMetrics_Usable(t *testing.T) {
	for _, status := range []string{FileStatusOK, FileStatusPartial, FileStatusUnreadable} {
		FilesLoadedTotal.WithLabelValues(status).Add(0)
	}
	for _, status := range []string{ReportStatusOK, ReportStatusNoData, ReportStatusError} {
		ReportsTotal.WithLabelValues("e", status).Add(0)
	}
	FileParseDuration.Observe(0.001)
}

// TestRecordFileLoaded verifies counters for file outcomes, readings and skipped rows.
func TestRecordFileLoaded(t *testing.T) {
	okBefore := testutil.ToFloat64(FilesLoadedTotal.WithLabelValues(FileStatusOK))
	readingsBefore := testutil.ToFloat64(ReadingsParsedTotal)
	skippedBefore := testutil.ToFloat64(RowsSkippedTotal)

	RecordFileLoaded(FileStatusOK, 31, 2, 3*time.Millisecond)

	if got := testutil.ToFloat64(FilesLoadedTotal.WithLabelValues(FileStatusOK)) - okBefore; got != 1 {
		t.Errorf("filesLoadedTotal{ok} delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ReadingsParsedTotal) - readingsBefore; got != 31 {
		t.Errorf("readingsParsedTotal delta = %v, want 31", got)
	}
	if got := testutil.ToFloat64(RowsSkippedTotal) - skippedBefore; got != 2 {
		t.Errorf("rowsSkippedTotal delta = %v, want 2", got)
	}
}

// TestRecordReport verifies the report counter labels.
func TestRecordReport(t *testing.T) {
	c := ReportsTotal.WithLabelValues("a", ReportStatusNoData)
	before := testutil.ToFloat64(c)
	RecordReport("a", ReportStatusNoData)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("reportsTotal{a,no_data} delta = %v, want 1", got)
	}
}

// TestFlushTelemetry_WritesTextfile verifies that the textfile is written in
// Prometheus text format.
func TestFlushTelemetry_WritesTextfile(t *testing.T) {
	RecordReport("e", ReportStatusOK)
	path := filepath.Join(t.TempDir(), "weatherman.prom")

	if err := FlushTelemetry(context.Background(), nil, path); err != nil {
		t.Fatalf("FlushTelemetry() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "reportsTotal") {
		t.Errorf("textfile should contain reportsTotal, got:\n%s", data)
	}
}

// TestFlushTelemetry_BadPath verifies that a textfile write failure is reported.
func TestFlushTelemetry_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "weatherman.prom")
	if err := FlushTelemetry(context.Background(), nil, path); err == nil {
		t.Error("FlushTelemetry() expected error for unwritable path, got nil")
	}
}

// TestFlushTelemetry_NoTextfile verifies that nothing is written without a path.
func TestFlushTelemetry_NoTextfile(t *testing.T) {
	if err := FlushTelemetry(context.Background(), nil, ""); err != nil {
		t.Errorf("FlushTelemetry() error = %v, want nil", err)
	}
}
