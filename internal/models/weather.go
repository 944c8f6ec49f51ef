package models

// Field identifies one of the numeric columns of a daily observation.
type Field uint8

const (
	MaxTemperature Field = iota
	MinTemperature
	MaxHumidity
	MeanHumidity
)

// Fields lists every numeric field in column order.
var Fields = []Field{MaxTemperature, MinTemperature, MaxHumidity, MeanHumidity}

func (f Field) String() string {
	switch f {
	case MaxTemperature:
		return "max_temperature"
	case MinTemperature:
		return "min_temperature"
	case MaxHumidity:
		return "max_humidity"
	case MeanHumidity:
		return "mean_humidity"
	default:
		return "unknown"
	}
}

// FieldSet is a bitmask of fields that were supplied by the source row.
type FieldSet uint8

// With returns s with f marked present.
func (s FieldSet) With(f Field) FieldSet {
	return s | 1<<f
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return s&(1<<f) != 0
}

// Reading is one day's observation. Numeric fields the source row did not carry
// are zero and absent from Present, so "missing" stays distinguishable from 0.
type Reading struct {
	Date           string   `json:"date"`
	MaxTemperature int      `json:"maxTemperature"`
	MinTemperature int      `json:"minTemperature"`
	MaxHumidity    int      `json:"maxHumidity"`
	MeanHumidity   int      `json:"meanHumidity"`
	Present        FieldSet `json:"-"`
}

// Has reports whether the source row supplied f.
func (r Reading) Has(f Field) bool {
	return r.Present.Has(f)
}

// Value returns the value of f (zero when absent).
func (r Reading) Value(f Field) int {
	switch f {
	case MaxTemperature:
		return r.MaxTemperature
	case MinTemperature:
		return r.MinTemperature
	case MaxHumidity:
		return r.MaxHumidity
	case MeanHumidity:
		return r.MeanHumidity
	}
	return 0
}

// AggregateResult carries the output of one aggregation. Every field is nil until computed.
type AggregateResult struct {
	AvgHighest      *float64 `json:"avgHighest,omitempty"`
	AvgLowest       *float64 `json:"avgLowest,omitempty"`
	AvgMeanHumidity *float64 `json:"avgMeanHumidity,omitempty"`

	Highest       *int    `json:"highest,omitempty"`
	HighestDate   *string `json:"highestDate,omitempty"`
	Lowest        *int    `json:"lowest,omitempty"`
	LowestDate    *string `json:"lowestDate,omitempty"`
	MostHumid     *int    `json:"mostHumid,omitempty"`
	MostHumidDate *string `json:"mostHumidDate,omitempty"`
}

// HasAverages reports whether the monthly averages were computed.
func (a AggregateResult) HasAverages() bool {
	return a.AvgHighest != nil && a.AvgLowest != nil && a.AvgMeanHumidity != nil
}

// HasExtremes reports whether the yearly extremes were computed.
func (a AggregateResult) HasExtremes() bool {
	return a.Highest != nil && a.Lowest != nil && a.MostHumid != nil
}
