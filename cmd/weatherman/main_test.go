package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kjstillabower/weatherman/internal/report"
)

const header = "PKT,Max TemperatureC,Min TemperatureC,Max Dew PointC,Max Humidity, Mean Humidity\n"

func dataDir(t *testing.T) string {
	t.Helper()
	t.Setenv("WEATHERMAN_CONFIG", "")
	t.Setenv("WEATHERMAN_DATA_DIR", "")
	t.Setenv("WEATHERMAN_FILE_PREFIX", "")
	t.Setenv("WEATHERMAN_METRICS_TEXTFILE", "")
	t.Setenv("ENV_NAME", "test-none")
	t.Setenv("LOG_LEVEL", "error")

	dir := t.TempDir()
	files := map[string]string{
		"Murree_weather_2004_Jan.txt": header + "2004-1-1,10,2,1,80,50\n2004-1-2,14,4,1,90,60\n<!-- -->\n",
		"Murree_weather_2004_Aug.txt": header + "2004-8-1,30,18,20,95,70\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

// TestParseArgs verifies the leading data directory and that repeated flags keep their order.
func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	inv, err := parseArgs([]string{"/data", "-e", "2004", "-a", "2004/8", "-e", "2005", "-c", "2004/1"}, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if inv.dataDir != "/data" {
		t.Errorf("dataDir = %q, want /data", inv.dataDir)
	}
	want := []periodArg{
		{report.KindYearlySummary, "2004"},
		{report.KindMonthlyAverages, "2004/8"},
		{report.KindYearlySummary, "2005"},
		{report.KindCombinedChart, "2004/1"},
	}
	if len(inv.periods) != len(want) {
		t.Fatalf("periods = %v, want %v", inv.periods, want)
	}
	for i := range want {
		if inv.periods[i] != want[i] {
			t.Errorf("periods[%d] = %v, want %v", i, inv.periods[i], want[i])
		}
	}
}

// TestParseArgs_TrailingDirectoryAndErrors verifies a data directory after the flags
// and rejection of extra arguments and unknown flags.
func TestParseArgs_TrailingDirectoryAndErrors(t *testing.T) {
	var stderr bytes.Buffer
	inv, err := parseArgs([]string{"-b", "2004/8", "/data"}, &stderr)
	if err != nil || inv.dataDir != "/data" {
		t.Errorf("parseArgs() = %+v, %v; want dataDir /data", inv, err)
	}
	if _, err := parseArgs([]string{"/data", "-e", "2004", "extra"}, &stderr); err == nil {
		t.Error("parseArgs() expected error for extra arguments")
	}
	if _, err := parseArgs([]string{"-x", "2004"}, &stderr); err == nil {
		t.Error("parseArgs() expected error for unknown flag")
	}
}

// TestRun_Reports verifies the end-to-end output for a yearly summary and a monthly chart.
func TestRun_Reports(t *testing.T) {
	dir := dataDir(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{dir, "-e", "2004", "-a", "2004/1", "-c", "2004/1"}, &stdout, &stderr)

	if code != exitOK {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, exitOK, stderr.String())
	}
	for _, want := range []string{
		"Requested Reports:\n- Yearly Summary Report for 2004\n",
		"- Monthly Averages Report for 2004/January\n",
		"- Highest: 30C on 2004-8-1\n",
		"- Lowest: 2C on 2004-1-1\n",
		"- Humidity: 95% on 2004-8-1\n",
		"- Highest Average: 12.0C\n",
		"January - 2004\n1 ++++++++++++ 2C - 10C\n",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

// TestRun_MissingMonthContinues verifies that a missing month fails only its own
// report and the exit code reports the failure.
func TestRun_MissingMonthContinues(t *testing.T) {
	dir := dataDir(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{dir, "-b", "2004/2", "-a", "2004/8"}, &stdout, &stderr)

	if code != exitReportsFailed {
		t.Errorf("run() = %d, want %d", code, exitReportsFailed)
	}
	if !strings.Contains(stdout.String(), "- Highest Average: 30.0C") {
		t.Errorf("later report should still run:\n%s", stdout.String())
	}
}

// TestRun_MissingDirectory verifies that a missing data directory is fatal.
func TestRun_MissingDirectory(t *testing.T) {
	dataDir(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{filepath.Join(t.TempDir(), "nope"), "-e", "2004"}, &stdout, &stderr)

	if code != exitFatal {
		t.Errorf("run() = %d, want %d", code, exitFatal)
	}
	if !strings.Contains(stderr.String(), "data directory unavailable") {
		t.Errorf("stderr = %q, want directory error", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

// TestRun_EmptyDirectory verifies the no-data exit.
func TestRun_EmptyDirectory(t *testing.T) {
	dataDir(t)
	var stdout, stderr bytes.Buffer

	if code := run([]string{t.TempDir(), "-e", "2004"}, &stdout, &stderr); code != exitFatal {
		t.Errorf("run() = %d, want %d", code, exitFatal)
	}
	if !strings.Contains(stderr.String(), "No data found") {
		t.Errorf("stderr = %q, want No data found", stderr.String())
	}
}

// TestRun_UsageErrors verifies exits for no requests, a bad period and -h.
func TestRun_UsageErrors(t *testing.T) {
	dir := dataDir(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no requests", []string{dir}, exitFatal},
		{"bad period", []string{dir, "-a", "2004/13"}, exitFatal},
		{"help", []string{"-h"}, exitOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tc.args, &stdout, &stderr); got != tc.want {
				t.Errorf("run(%v) = %d, want %d; stderr: %s", tc.args, got, tc.want, stderr.String())
			}
		})
	}
}

// TestRun_WritesMetricsTextfile verifies that metrics are written at exit when configured.
func TestRun_WritesMetricsTextfile(t *testing.T) {
	dir := dataDir(t)
	prom := filepath.Join(t.TempDir(), "weatherman.prom")
	t.Setenv("WEATHERMAN_METRICS_TEXTFILE", prom)
	var stdout, stderr bytes.Buffer

	if code := run([]string{dir, "-e", "2004"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}
	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "filesLoadedTotal") {
		t.Errorf("metrics textfile missing filesLoadedTotal:\n%s", data)
	}
}
