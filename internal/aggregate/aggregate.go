package aggregate

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kjstillabower/weatherman/internal/models"
	"github.com/kjstillabower/weatherman/internal/store"
)

// ErrNoReadings is returned by YearlyExtremes when the input holds no readings.
var ErrNoReadings = errors.New("no readings to aggregate")

// averagePlaces is the number of decimal places kept by MonthlyAverages.
const averagePlaces = 1

// MonthlyAverages averages max temperature, min temperature and mean humidity over
// every reading in s. Sums are exact; each mean is rounded half-to-even to one place.
// An empty store returns a result with all fields nil.
func MonthlyAverages(s *store.Store) models.AggregateResult {
	if s == nil || s.Len() == 0 {
		return models.AggregateResult{}
	}

	var high, low, humidity int64
	for _, r := range s.Readings() {
		high += int64(r.MaxTemperature)
		low += int64(r.MinTemperature)
		humidity += int64(r.MeanHumidity)
	}
	n := int64(s.Len())

	return models.AggregateResult{
		AvgHighest:      mean(high, n),
		AvgLowest:       mean(low, n),
		AvgMeanHumidity: mean(humidity, n),
	}
}

func mean(sum, n int64) *float64 {
	d := decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)).RoundBank(averagePlaces)
	f := d.InexactFloat64()
	return &f
}

// YearlyExtremes scans every reading of every store, files in order of their
// earliest date and readings in date order, and records the highest max
// temperature, the lowest min temperature and the highest max humidity with the
// date each was first seen. Ties keep the chronologically first occurrence.
// MostHumidDate stays nil when no reading has a max humidity above zero.
func YearlyExtremes(set *store.Set) (models.AggregateResult, error) {
	if set == nil || set.Readings() == 0 {
		return models.AggregateResult{}, ErrNoReadings
	}

	highest, lowest, mostHumid := math.MinInt, math.MaxInt, 0
	var highestDate, lowestDate, humidDate *string

	for _, name := range set.ChronologicalNames() {
		st, _ := set.Get(name)
		for _, r := range st.Readings() {
			date := r.Date
			if r.MaxTemperature > highest {
				highest = r.MaxTemperature
				highestDate = &date
			}
			if r.MinTemperature < lowest {
				lowest = r.MinTemperature
				lowestDate = &date
			}
			if r.MaxHumidity > mostHumid {
				mostHumid = r.MaxHumidity
				humidDate = &date
			}
		}
	}

	return models.AggregateResult{
		Highest:       &highest,
		HighestDate:   highestDate,
		Lowest:        &lowest,
		LowestDate:    lowestDate,
		MostHumid:     &mostHumid,
		MostHumidDate: humidDate,
	}, nil
}

// Bar holds the values a bar chart needs for one day. Lengths equal the
// temperatures themselves and are never clamped, so a negative temperature
// yields a negative length.
type Bar struct {
	Date string
	Day  string
	High int
	Low  int
}

// HighLen is the length of the high-temperature bar.
func (b Bar) HighLen() int { return b.High }

// LowLen is the length of the low-temperature bar.
func (b Bar) LowLen() int { return b.Low }

// CombinedLen is the length of the combined bar.
func (b Bar) CombinedLen() int { return b.High + b.Low }

// DailyBars returns one Bar per reading of s in date order.
func DailyBars(s *store.Store) []Bar {
	if s == nil {
		return nil
	}
	readings := s.Readings()
	bars := make([]Bar, 0, len(readings))
	for _, r := range readings {
		bars = append(bars, Bar{
			Date: r.Date,
			Day:  dayOf(r.Date),
			High: r.MaxTemperature,
			Low:  r.MinTemperature,
		})
	}
	return bars
}

// dayOf returns the third dash-separated part of a date key, or the whole key
// when it has fewer parts.
func dayOf(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) < 3 {
		return date
	}
	return parts[2]
}
