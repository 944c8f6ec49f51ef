package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kjstillabower/weatherman/internal/models"
	"github.com/kjstillabower/weatherman/internal/store"
)

// ErrInvalidValue is returned when a numeric column holds a non-integer value.
// The store returned alongside it holds every reading parsed before the bad line.
var ErrInvalidValue = errors.New("invalid numeric value")

// ErrNotFile is returned by ParseFile for paths that are not regular files.
var ErrNotFile = errors.New("not a regular file")

// Schema names the header column bound to each numeric field.
// Names are compared after trimming surrounding whitespace on both sides.
type Schema struct {
	MaxTemperature string
	MinTemperature string
	MaxHumidity    string
	MeanHumidity   string
}

// DefaultSchema returns the column names used by the Murree observation files.
func DefaultSchema() Schema {
	return Schema{
		MaxTemperature: "Max TemperatureC",
		MinTemperature: "Min TemperatureC",
		MaxHumidity:    "Max Humidity",
		MeanHumidity:   "Mean Humidity",
	}
}

func (s Schema) column(f models.Field) string {
	switch f {
	case models.MaxTemperature:
		return s.MaxTemperature
	case models.MinTemperature:
		return s.MinTemperature
	case models.MaxHumidity:
		return s.MaxHumidity
	case models.MeanHumidity:
		return s.MeanHumidity
	}
	return ""
}

// Stats counts what happened to the data lines of one file.
type Stats struct {
	Rows     int // non-blank data lines read, excluding the header
	Readings int // lines turned into a Reading
	Skipped  int // lines dropped for having fewer fields than the header
}

// Parser turns delimited observation text into a Store.
type Parser struct {
	schema    Schema
	delimiter rune
}

// New creates a Parser. A zero delimiter means comma.
func New(schema Schema, delimiter rune) *Parser {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Parser{schema: schema, delimiter: delimiter}
}

// binding maps each field to its header index; -1 when the header lacks the column.
type binding [4]int

func (p *Parser) bind(header []string) binding {
	var b binding
	for _, f := range models.Fields {
		b[f] = -1
		want := strings.TrimSpace(p.schema.column(f))
		for i, h := range header {
			if strings.TrimSpace(h) == want {
				b[f] = i
				break
			}
		}
	}
	return b
}

// maxLineSize bounds a single line; observation lines are far shorter.
const maxLineSize = 1 << 20

// Parse reads a header line followed by data lines. Each line is trimmed and split
// on the delimiter; quotes carry no meaning. Blank lines are ignored and lines with
// fewer fields than the header are skipped. A non-integer value in a bound column
// stops parsing and returns the partial store with an error wrapping ErrInvalidValue.
func (p *Parser) Parse(r io.Reader) (*store.Store, Stats, error) {
	st := store.New()
	var stats Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sep := string(p.delimiter)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return st, stats, fmt.Errorf("read header: %w", err)
		}
		return st, stats, nil
	}
	header := strings.Split(strings.TrimSpace(sc.Text()), sep)
	cols := p.bind(header)

	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		stats.Rows++
		row := strings.Split(text, sep)
		if len(row) < len(header) {
			stats.Skipped++
			continue
		}

		reading := models.Reading{Date: strings.TrimSpace(row[0])}
		for _, f := range models.Fields {
			idx := cols[f]
			if idx < 0 {
				continue
			}
			raw := strings.TrimSpace(row[idx])
			v, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return st, stats, fmt.Errorf("line %d column %q: %w %q", line, strings.TrimSpace(header[idx]), ErrInvalidValue, raw)
			}
			setField(&reading, f, v)
			reading.Present = reading.Present.With(f)
		}
		st.Add(reading)
		stats.Readings++
	}
	if err := sc.Err(); err != nil {
		return st, stats, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return st, stats, nil
}

// ParseFile opens path and parses it with Parse. The store is nil only when the
// file could not be opened at all.
func (p *Parser) ParseFile(path string) (*store.Store, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, Stats{}, fmt.Errorf("%s: %w", path, ErrNotFile)
	}
	return p.Parse(f)
}

func setField(r *models.Reading, f models.Field, v int) {
	switch f {
	case models.MaxTemperature:
		r.MaxTemperature = v
	case models.MinTemperature:
		r.MinTemperature = v
	case models.MaxHumidity:
		r.MaxHumidity = v
	case models.MeanHumidity:
		r.MeanHumidity = v
	}
}
