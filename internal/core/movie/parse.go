// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/cinetrend/pkg/pointer"
	"github.com/taibuivan/cinetrend/pkg/slug"
)

// # Column Mapping

// column lists the header spellings of one field across dataset variants, in
// lookup priority order.
type column []string

var (
	colTitle    = column{"original_title", "title"}
	colYear     = column{"release_date", "release_year", "year"}
	colDirector = column{"Director", "director"}
	colCountry  = column{"País de nacimiento", "pais_nacimiento", "country_of_birth"}
	colExtra    = column{"Película extra", "pelicula_extra", "extra_film"}
	colAward    = column{"oscar", "won_award"}
	colVotes    = column{"vote_quantity", "vote_count"}
	colAverage  = column{"vote_average"}
	colRuntime  = column{"runtime"}
	colBudget   = column{"budget"}
)

// ErrEmptyDataset is returned when the CSV text has no header row.
var ErrEmptyDataset = errors.New("movie: csv has no header row")

// awardLiteral is the only source value that marks an award winner.
const awardLiteral = "True"

// header resolves canonical columns to positions in one CSV file.
type header map[string]int

func newHeader(names []string) header {
	positions := make(header, len(names))
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, exists := positions[name]; !exists {
			positions[name] = i
		}
	}
	return positions
}

// cell returns the raw value for c and whether the row actually carries it.
func (h header) cell(row []string, c column) (string, bool) {
	for _, alias := range c {
		if i, ok := h[alias]; ok {
			if i < len(row) {
				return row[i], true
			}
			return "", false
		}
	}
	return "", false
}

// # Parsing

// Parse reads CSV text with a header row and returns the cleaned records in
// source order. Rows whose vote average or vote count is not a finite number
// are dropped, and so are rows the CSV reader cannot parse. Only a read
// failure of the underlying reader aborts.
func Parse(reader io.Reader) ([]Record, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	names, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("movie: read header: %w", err)
	}
	columns := newHeader(names)

	records := make([]Record, 0)
	slugs := slug.Registry{}

	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("movie: read line %d: %w", line, err)
		}

		record, ok := columns.record(row)
		if !ok {
			continue
		}
		record.Slug = slugs.Movie(record.Title, record.ReleaseYear)
		records = append(records, record)
	}

	return records, nil
}

// record maps one row onto a [Record]; ok is false when the row is rejected.
func (h header) record(row []string) (Record, bool) {
	average := h.number(row, colAverage)
	votes := h.number(row, colVotes)
	if !isFinite(average) || !isFinite(votes) {
		return Record{}, false
	}

	title, _ := h.cell(row, colTitle)
	director, _ := h.cell(row, colDirector)
	country, _ := h.cell(row, colCountry)
	extra, _ := h.cell(row, colExtra)
	award, _ := h.cell(row, colAward)

	return Record{
		Title:          title,
		ReleaseYear:    toYear(h.number(row, colYear)),
		Director:       director,
		CountryOfBirth: country,
		ExtraFilmNote:  extra,
		WonAward:       award == awardLiteral,
		VoteCount:      votes,
		VoteAverage:    average,
		Runtime:        optional(h.number(row, colRuntime)),
		Budget:         optional(h.number(row, colBudget)),
	}, true
}

func (h header) number(row []string, c column) float64 {
	raw, present := h.cell(row, c)
	if !present {
		return math.NaN()
	}
	return LooseNumber(raw)
}

// LooseNumber coerces text the way a lenient numeric cast does: surrounding
// whitespace is ignored, blank text is 0, "Infinity" and 0x/0o/0b integer
// literals are accepted, anything else that is not a decimal number is NaN.
func LooseNumber(raw string) float64 {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0
	}

	if value, ok := prefixedInteger(text); ok {
		return value
	}

	unsigned := strings.TrimLeft(text, "+-")
	switch {
	case unsigned == "Infinity":
		if strings.HasPrefix(text, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case len(text)-len(unsigned) > 1:
		return math.NaN()
	case strings.ContainsAny(unsigned, "_xXpPiInN"):
		// Rejects spellings strconv accepts but a numeric cast does not
		// (inf, nan, hex floats, digit separators).
		return math.NaN()
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return value
		}
		return math.NaN()
	}
	return value
}

// prefixedInteger parses unsigned 0x, 0o and 0b literals.
func prefixedInteger(text string) (float64, bool) {
	if len(text) < 3 || text[0] != '0' {
		return 0, false
	}

	base := 0
	switch text[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}

	value, err := strconv.ParseUint(text[2:], base, 64)
	if err != nil {
		return math.NaN(), true
	}
	return float64(value), true
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// toYear truncates a coerced year; non-finite years collapse to 0.
func toYear(value float64) int {
	if !isFinite(value) {
		return 0
	}
	return int(math.Trunc(value))
}

func optional(value float64) *float64 {
	if !isFinite(value) {
		return nil
	}
	return pointer.To(value)
}
