package stats

import (
	"errors"
	"slices"

	"github.com/samber/lo"
)

var (
	// ErrEmptyInput is returned when a load supplies no rows at all.
	ErrEmptyInput = errors.New("no data found in the file")
	// ErrNoValidDates is returned when every row was rejected for its date.
	ErrNoValidDates = errors.New("no valid dates found in 'LastOperation' column")
)

// Dataset is the canonical in-memory form of one load. It is built once and never
// mutated; a new load produces a new Dataset.
type Dataset struct {
	Records []Record `json:"rows"`

	Operators     []string `json:"operators"`
	Operations    []string `json:"operations"`
	Trims         []string `json:"trims"`
	CarpetTypes   []string `json:"carpetTypes"`
	CarpetColours []string `json:"carpetColours"`
	Sources       []string `json:"sources"`

	AvailableDates []string `json:"availableDates"`
	AvailableWeeks []string `json:"availableWeeks"`

	// InitialDate is where navigation starts: the earliest available date.
	InitialDate string `json:"initialCurrentDate"`
	// LatestDate is the chronologically last parsed date.
	LatestDate string `json:"latestDate"`
	// Rejected counts rows dropped for an unparsable LastOperation.
	Rejected int `json:"rejected"`
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s stringSet) sorted() []string {
	out := lo.Keys(s)
	slices.Sort(out)
	return out
}

// Build normalizes raw rows and derives the per-axis category sets and the navigable
// dates and weeks.
func Build(rows []RawRow) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	var (
		operators  = stringSet{}
		operations = stringSet{}
		trims      = stringSet{}
		types      = stringSet{}
		colours    = stringSet{}
		sources    = stringSet{}
		dates      = stringSet{}
	)

	ds := &Dataset{Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		rec, ok := Normalize(row)
		if !ok {
			ds.Rejected++
			continue
		}
		ds.Records = append(ds.Records, rec)

		operators.add(rec.OperatorName)
		operations.add(rec.OperationName)
		trims.add(rec.Trim)
		types.add(rec.CarpetType)
		colours.add(rec.CarpetColour)
		sources.add(rec.SourceGroup)
		dates.add(rec.DateKey)

		// Keys are zero-padded, so string order is chronological order.
		if rec.DateKey > ds.LatestDate {
			ds.LatestDate = rec.DateKey
		}
	}

	if len(ds.Records) == 0 {
		return nil, ErrNoValidDates
	}

	ds.Operators = operators.sorted()
	ds.Operations = operations.sorted()
	ds.Trims = trims.sorted()
	ds.CarpetTypes = types.sorted()
	ds.CarpetColours = colours.sorted()
	ds.Sources = sources.sorted()
	ds.AvailableDates = dates.sorted()
	ds.AvailableWeeks = AvailableWeeks(ds.AvailableDates)
	ds.InitialDate = ds.AvailableDates[0]

	return ds, nil
}

// Filter returns the records for which keep reports true.
func (d *Dataset) Filter(keep func(Record) bool) []Record {
	if d == nil {
		return nil
	}
	return lo.Filter(d.Records, func(r Record, _ int) bool { return keep(r) })
}

// HasDate reports whether key is one of the available dates.
func (d *Dataset) HasDate(key string) bool {
	if d == nil {
		return false
	}
	_, found := slices.BinarySearch(d.AvailableDates, key)
	return found
}
