package report

import (
	"fmt"
	"time"

	"github.com/kjstillabower/weatherman/internal/validation"
)

// Kind selects which report a Request produces.
type Kind int

const (
	KindYearlySummary Kind = iota
	KindMonthlyAverages
	KindDailyChart
	KindCombinedChart
)

// Kinds lists every report kind in flag order.
var Kinds = []Kind{KindYearlySummary, KindMonthlyAverages, KindDailyChart, KindCombinedChart}

// String returns the report title.
func (k Kind) String() string {
	switch k {
	case KindYearlySummary:
		return "Yearly Summary Report"
	case KindMonthlyAverages:
		return "Monthly Averages Report"
	case KindDailyChart:
		return "Daily Temperature Chart (Bars)"
	case KindCombinedChart:
		return "Combined Daily Bar Chart"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Flag returns the command-line flag name for the kind.
func (k Kind) Flag() string {
	switch k {
	case KindYearlySummary:
		return "e"
	case KindMonthlyAverages:
		return "a"
	case KindDailyChart:
		return "b"
	case KindCombinedChart:
		return "c"
	default:
		return ""
	}
}

// Usage returns the help text for the kind's flag.
func (k Kind) Usage() string {
	switch k {
	case KindYearlySummary:
		return "yearly summary report for `YEAR`"
	case KindMonthlyAverages:
		return "monthly averages report for `YEAR/MONTH` (or YEAR for the whole year)"
	case KindDailyChart:
		return "daily temperature chart for `YEAR/MONTH`"
	case KindCombinedChart:
		return "combined daily bar chart for `YEAR/MONTH`"
	default:
		return ""
	}
}

// Request is one report to produce. Month is 0 for a whole-year request.
type Request struct {
	Kind  Kind
	Year  int
	Month time.Month
	Files []string
}

// NewRequest parses period ("YYYY" or "YYYY/M") and resolves the source file names.
func NewRequest(kind Kind, period, prefix string) (Request, error) {
	year, month, err := validation.ValidatePeriod(period)
	if err != nil {
		return Request{}, fmt.Errorf("-%s %q: %w", kind.Flag(), period, err)
	}
	return Request{
		Kind:  kind,
		Year:  year,
		Month: month,
		Files: FileNames(prefix, year, month),
	}, nil
}

// WholeYear reports whether the request spans all twelve months.
func (r Request) WholeYear() bool {
	return r.Month == 0
}

// Period returns "YEAR" or "YEAR/Month" for display.
func (r Request) Period() string {
	if r.WholeYear() {
		return fmt.Sprintf("%d", r.Year)
	}
	return fmt.Sprintf("%d/%s", r.Year, r.Month)
}

// String describes the request as listed before the reports run.
func (r Request) String() string {
	return fmt.Sprintf("%s for %s", r.Kind, r.Period())
}

// FileName returns the data file name for one month, e.g. Murree_weather_2004_Aug.txt.
func FileName(prefix string, year int, month time.Month) string {
	return fmt.Sprintf("%s_%d_%s.txt", prefix, year, month.String()[:3])
}

// FileNames returns the single file for month, or all twelve files when month is 0.
func FileNames(prefix string, year int, month time.Month) []string {
	if month != 0 {
		return []string{FileName(prefix, year, month)}
	}
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, FileName(prefix, year, m))
	}
	return names
}
