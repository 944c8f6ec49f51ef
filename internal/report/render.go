package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kjstillabower/weatherman/internal/aggregate"
	"github.com/kjstillabower/weatherman/internal/models"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for f. In auto mode color is used only when
// f is a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes reports as plain text. The first write error is kept and
// returned by every later call.
type Renderer struct {
	w     io.Writer
	color bool
	err   error
}

// NewRenderer creates a Renderer writing to w. color wraps bars in ANSI colors.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// RequestedReports lists the requests about to run.
func (r *Renderer) RequestedReports(reqs []Request) error {
	r.printf("Requested Reports:\n")
	for _, req := range reqs {
		r.printf("- %s\n", req)
	}
	r.printf("\n")
	return r.err
}

// MonthlyAverages prints the monthly averages report. A result without
// averages prints a no-data line instead of values.
func (r *Renderer) MonthlyAverages(res models.AggregateResult) error {
	r.printf("Monthly Averages Report:\n")
	if res.HasAverages() {
		r.printf("- Highest Average: %.1fC\n", *res.AvgHighest)
		r.printf("- Lowest Average: %.1fC\n", *res.AvgLowest)
		r.printf("- Average Mean Humidity: %.1f%%\n", *res.AvgMeanHumidity)
	} else {
		r.printf("- No data\n")
	}
	r.printf("%s\n", strings.Repeat("-", 40))
	return r.err
}

// YearlySummary prints the yearly extremes report.
func (r *Renderer) YearlySummary(res models.AggregateResult) error {
	r.printf("Yearly Summary Report:\n")
	if res.HasExtremes() {
		r.printf("- Highest: %dC%s\n", *res.Highest, onDate(res.HighestDate))
		r.printf("- Lowest: %dC%s\n", *res.Lowest, onDate(res.LowestDate))
		r.printf("- Humidity: %d%%%s\n", *res.MostHumid, onDate(res.MostHumidDate))
	} else {
		r.printf("- No data\n")
	}
	r.printf("%s\n", strings.Repeat("-", 48))
	return r.err
}

func onDate(date *string) string {
	if date == nil {
		return ""
	}
	return " on " + *date
}

// DailyChart prints two bars per day, high then low.
func (r *Renderer) DailyChart(title string, bars []aggregate.Bar) error {
	r.printf("%s\n", title)
	for _, b := range bars {
		r.printf("%s %s %dC\n", b.Day, r.paint(ansiRed, bar(b.HighLen())), b.High)
		r.printf("%s %s %dC\n", b.Day, r.paint(ansiBlue, bar(b.LowLen())), b.Low)
	}
	return r.err
}

// CombinedChart prints one bar per day spanning low plus high.
func (r *Renderer) CombinedChart(title string, bars []aggregate.Bar) error {
	r.printf("%s\n", title)
	for _, b := range bars {
		total := max(b.CombinedLen(), 0)
		lowN := clamp(b.LowLen(), 0, total)
		line := r.paint(ansiBlue, bar(lowN)) + r.paint(ansiRed, bar(total-lowN))
		r.printf("%s %s %dC - %dC\n", b.Day, line, b.Low, b.High)
	}
	return r.err
}

// ChartTitle returns "Month - Year" for a monthly request and "Year" for a whole year.
func ChartTitle(req Request) string {
	if req.WholeYear() {
		return fmt.Sprintf("%d", req.Year)
	}
	return fmt.Sprintf("%s - %d", req.Month, req.Year)
}

func (r *Renderer) paint(code, s string) string {
	if !r.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

// bar renders n plus signs; negative lengths render as an empty bar.
func bar(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("+", n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
