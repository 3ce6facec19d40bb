package stats

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Granularity is the time window a view aggregates over.
type Granularity string

const (
	Daily        Granularity = "daily"
	Weekly       Granularity = "weekly"
	WeeklyPerDay Granularity = "weeklyPerDay"
)

var ErrUnknownGranularity = errors.New("unknown time granularity")

// Granularities lists every supported granularity.
func Granularities() []Granularity { return []Granularity{Daily, Weekly, WeeklyPerDay} }

// ParseGranularity validates a wire value.
func ParseGranularity(s string) (Granularity, error) {
	for _, g := range Granularities() {
		if string(g) == s {
			return g, nil
		}
	}
	return Daily, fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
}

// Weekly reports whether the granularity navigates by week.
func (g Granularity) Weekly() bool { return g == Weekly || g == WeeklyPerDay }

// Next cycles daily -> weekly -> weeklyPerDay -> daily.
func (g Granularity) Next() Granularity {
	switch g {
	case Daily:
		return Weekly
	case Weekly:
		return WeeklyPerDay
	default:
		return Daily
	}
}

// DayMatrix is the aggregation of a single day inside a weekly-per-day view.
type DayMatrix struct {
	DateKey string      `json:"date"`
	Weekday string      `json:"weekday"`
	Matrix  CountMatrix `json:"matrix"`
}

// Result is the chart-ready output of a window selection. Matrix is set for daily and
// weekly views, Days for weeklyPerDay.
type Result struct {
	Axis        Axis        `json:"analysisType"`
	Granularity Granularity `json:"granularity"`
	DateKey     string      `json:"date"`
	EndKey      string      `json:"endDate,omitempty"`
	Matrix      CountMatrix `json:"matrix,omitempty"`
	Days        []DayMatrix `json:"days,omitempty"`
}

// MarshalJSON always emits the field matching the granularity, as [] when empty.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Matrix *CountMatrix `json:"matrix,omitempty"`
		Days   *[]DayMatrix `json:"days,omitempty"`
	}{plain: plain(r)}
	if r.Granularity == WeeklyPerDay {
		days := r.Days
		if days == nil {
			days = []DayMatrix{}
		}
		out.Days = &days
	} else {
		matrix := r.Matrix
		if matrix == nil {
			matrix = CountMatrix{}
		}
		out.Matrix = &matrix
	}
	return json.Marshal(out)
}

// HasData reports whether any count is present in the view.
func (r Result) HasData() bool {
	if r.Granularity == WeeklyPerDay {
		for _, d := range r.Days {
			if len(d.Matrix) > 0 {
				return true
			}
		}
		return false
	}
	return len(r.Matrix) > 0
}

// ByDay returns the weekly-per-day matrices keyed by date.
func (r Result) ByDay() map[string]CountMatrix {
	out := make(map[string]CountMatrix, len(r.Days))
	for _, d := range r.Days {
		out[d.DateKey] = d.Matrix
	}
	return out
}

// DayRecords returns the records dated exactly key.
func DayRecords(d *Dataset, key string) []Record {
	return d.Filter(func(r Record) bool { return r.DateKey == key })
}

// WeekRecords returns the records within [start, start+6 days]. ok is false when
// start is not a valid key.
func WeekRecords(d *Dataset, start string) (records []Record, end string, ok bool) {
	end, ok = AddDays(start, DaysPerWeek-1)
	if !ok {
		return nil, "", false
	}
	records = d.Filter(func(r Record) bool { return r.DateKey >= start && r.DateKey <= end })
	return records, end, true
}

// Select aggregates the dataset along axis for the window anchored at key. For the
// weekly modes key is taken as the first day of the window.
func Select(d *Dataset, axis Axis, key string, g Granularity) Result {
	res := Result{Axis: axis, Granularity: g, DateKey: key}
	if d == nil || len(d.Records) == 0 || key == "" || len(d.Operations) == 0 {
		if g == WeeklyPerDay {
			res.Days = []DayMatrix{}
		} else {
			res.Matrix = CountMatrix{}
		}
		return res
	}

	categories := axis.Categories(d)
	aggregate := func(records []Record) CountMatrix {
		return Aggregate(records, axis, categories, d.Operations)
	}

	switch g {
	case Weekly:
		records, end, ok := WeekRecords(d, key)
		if !ok {
			res.Matrix = CountMatrix{}
			return res
		}
		res.EndKey = end
		res.Matrix = aggregate(records)
	case WeeklyPerDay:
		days := WeekDays(key)
		res.Days = make([]DayMatrix, 0, len(days))
		for _, day := range days {
			res.Days = append(res.Days, DayMatrix{
				DateKey: day,
				Weekday: DayOfWeekName(day),
				Matrix:  aggregate(DayRecords(d, day)),
			})
		}
		if len(days) > 0 {
			res.EndKey = days[len(days)-1]
		}
	default:
		res.Granularity = Daily
		res.Matrix = aggregate(DayRecords(d, key))
	}
	return res
}
