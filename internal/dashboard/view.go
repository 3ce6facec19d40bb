package dashboard

import (
	"errors"
	"fmt"

	"prodstats/internal/stats"
)

// ErrNoData is returned by queries made before any dataset was committed.
var ErrNoData = errors.New("no data loaded")

// ErrInvalidDate is returned for a date that is not a YYYY-MM-DD calendar day.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Overview summarises the committed dataset.
type Overview struct {
	FileName      string   `json:"fileName"`
	LoadID        string   `json:"loadId"`
	Rows          int      `json:"rows"`
	Rejected      int      `json:"rejected"`
	Operators     []string `json:"operators"`
	Operations    []string `json:"operations"`
	Trims         []string `json:"trims"`
	CarpetTypes   []string `json:"carpetTypes"`
	CarpetColours []string `json:"carpetColours"`
	Sources       []string `json:"sources"`
	DateCount     int      `json:"availableDateCount"`
	FirstDate     string   `json:"firstDate"`
	LatestDate    string   `json:"latestDate"`
	Weeks         []string `json:"availableWeeks"`
}

// NewOverview describes the dataset of s. ok is false when nothing is loaded.
func NewOverview(s State) (Overview, bool) {
	if !s.HasData() {
		return Overview{}, false
	}
	d := s.Dataset
	return Overview{
		FileName:      s.FileName,
		LoadID:        s.LoadID,
		Rows:          len(d.Records),
		Rejected:      d.Rejected,
		Operators:     d.Operators,
		Operations:    d.Operations,
		Trims:         d.Trims,
		CarpetTypes:   d.CarpetTypes,
		CarpetColours: d.CarpetColours,
		Sources:       d.Sources,
		DateCount:     len(d.AvailableDates),
		FirstDate:     d.InitialDate,
		LatestDate:    d.LatestDate,
		Weeks:         d.AvailableWeeks,
	}, true
}

// View is the rendered dashboard: navigation state plus the aggregated period.
type View struct {
	State       State        `json:"state"`
	Period      string       `json:"period"`
	AxisLabel   string       `json:"axisLabel"`
	CanPrevious bool         `json:"canPrevious"`
	CanNext     bool         `json:"canNext"`
	HasData     bool         `json:"hasData"`
	Result      stats.Result `json:"result"`
}

// NewView renders s.
func NewView(s State) View {
	res := s.Result()
	return View{
		State:       s,
		Period:      s.PeriodLabel(),
		AxisLabel:   s.Axis.Label(),
		CanPrevious: s.CanPrev(),
		CanNext:     s.CanNext(),
		HasData:     res.HasData(),
		Result:      res,
	}
}

// Query aggregates the dataset of s with optional overrides of the axis, granularity
// and date; empty arguments keep the session values. A date given for a weekly view
// is moved to the start of its week. s is not changed.
func Query(s State, axis, granularity, date string) (stats.Result, error) {
	if !s.HasData() {
		return stats.Result{}, ErrNoData
	}

	a := s.Axis
	if axis != "" {
		var err error
		if a, err = stats.ParseAxis(axis); err != nil {
			return stats.Result{}, err
		}
	}

	g := s.Granularity
	if granularity != "" {
		var err error
		if g, err = stats.ParseGranularity(granularity); err != nil {
			return stats.Result{}, err
		}
	}

	key := s.CurrentDate
	if date != "" {
		if _, ok := stats.ParseKey(date); !ok {
			return stats.Result{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		key = date
	}
	if g.Weekly() {
		if wk, ok := stats.WeekStartKey(key); ok {
			key = wk
		}
	}

	return stats.Select(s.Dataset, a, key, g), nil
}

// ViewActions translates a partial view change of s into actions. Empty arguments
// leave the corresponding setting alone. A date is moved to the start of its week when
// the resulting granularity is weekly.
func ViewActions(s State, axis, granularity, date string) ([]Action, error) {
	var actions []Action
	if axis != "" {
		a, err := stats.ParseAxis(axis)
		if err != nil {
			return nil, err
		}
		actions = append(actions, SetAxis{Axis: a})
	}

	g := s.Granularity
	if granularity != "" {
		var err error
		if g, err = stats.ParseGranularity(granularity); err != nil {
			return nil, err
		}
	}
	if date != "" {
		if _, ok := stats.ParseKey(date); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		if g.Weekly() {
			date, _ = stats.WeekStartKey(date)
		}
	}

	switch {
	case granularity != "":
		actions = append(actions, SetGranularity{Granularity: g, Date: date})
	case date != "":
		actions = append(actions, SetCurrentDate{Date: date})
	}
	return actions, nil
}
