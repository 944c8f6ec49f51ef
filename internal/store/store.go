package store

import (
	"sort"
	"strings"
	"time"

	"github.com/kjstillabower/weatherman/internal/models"
)

// dateLayout matches the unpadded keys written by the source files (e.g. 2004-8-1).
const dateLayout = "2006-1-2"

// Store maps a date key to its Reading. A later Add for the same date replaces
// the earlier one. Not thread-safe; build from one goroutine, then only read.
type Store struct {
	readings map[string]models.Reading
}

// New creates an empty Store.
func New() *Store {
	return &Store{readings: make(map[string]models.Reading)}
}

// Add inserts r keyed by r.Date, overwriting any reading already stored for that date.
func (s *Store) Add(r models.Reading) {
	s.readings[r.Date] = r
}

// Get returns the reading for date.
func (s *Store) Get(date string) (models.Reading, bool) {
	r, ok := s.readings[date]
	return r, ok
}

// Len returns the number of stored readings.
func (s *Store) Len() int {
	return len(s.readings)
}

// Dates returns the stored date keys in ascending date order.
// Keys that parse as dates sort chronologically; any other key sorts after
// them, lexicographically.
func (s *Store) Dates() []string {
	keys := make([]string, 0, len(s.readings))
	for k := range s.readings {
		keys = append(keys, k)
	}
	SortDates(keys)
	return keys
}

// Readings returns every reading in Dates order.
func (s *Store) Readings() []models.Reading {
	dates := s.Dates()
	out := make([]models.Reading, 0, len(dates))
	for _, d := range dates {
		out = append(out, s.readings[d])
	}
	return out
}

// Merge returns a new Store holding every reading of stores, inserted in argument order.
func Merge(stores ...*Store) *Store {
	merged := New()
	for _, st := range stores {
		if st == nil {
			continue
		}
		for _, r := range st.Readings() {
			merged.Add(r)
		}
	}
	return merged
}

// SortDates sorts date keys in place using the Store ordering.
func SortDates(keys []string) {
	parsed := make(map[string]time.Time, len(keys))
	for _, k := range keys {
		if t, err := time.Parse(dateLayout, strings.TrimSpace(k)); err == nil {
			parsed[k] = t
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ti, iok := parsed[keys[i]]
		tj, jok := parsed[keys[j]]
		switch {
		case iok && jok:
			if ti.Equal(tj) {
				return keys[i] < keys[j]
			}
			return ti.Before(tj)
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
}
