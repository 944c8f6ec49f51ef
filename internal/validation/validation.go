package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrPeriodEmpty is returned when the period is empty or whitespace-only after trim.
var ErrPeriodEmpty = errors.New("period is required")

// ErrPeriodMalformed is returned when the period is not YEAR or YEAR/MONTH.
var ErrPeriodMalformed = errors.New("period must be YYYY or YYYY/MM")

// ErrPeriodInvalidYear is returned when the year part is not a four-digit year.
var ErrPeriodInvalidYear = errors.New("invalid year")

// ErrPeriodInvalidMonth is returned when the month part is not 1-12.
var ErrPeriodInvalidMonth = errors.New("invalid month")

// ValidatePeriod trims the input and parses "YYYY" or "YYYY/M" (month may be zero-padded).
// A missing month is returned as 0, meaning the whole year.
func ValidatePeriod(input string) (int, time.Month, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, 0, ErrPeriodEmpty
	}
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return 0, 0, ErrPeriodMalformed
	}

	yearPart := parts[0]
	if len(yearPart) != 4 || !allDigits(yearPart) {
		return 0, 0, ErrPeriodInvalidYear
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, ErrPeriodInvalidYear
	}
	if len(parts) == 1 {
		return year, 0, nil
	}

	monthPart := parts[1]
	if monthPart == "" || len(monthPart) > 2 || !allDigits(monthPart) {
		return 0, 0, ErrPeriodInvalidMonth
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrPeriodInvalidMonth
	}
	return year, time.Month(month), nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
