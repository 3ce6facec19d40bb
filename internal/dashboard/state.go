// Package dashboard holds the navigation state of a production statistics view and
// the pure reducer that evolves it.
package dashboard

import (
	"slices"

	"prodstats/internal/stats"
)

// ViewType selects between chart and table rendering.
type ViewType string

const (
	ViewChart ViewType = "chart"
	ViewTable ViewType = "table"
)

// State is an immutable snapshot of the dashboard. Reduce returns new values and
// never mutates its input.
type State struct {
	Loading     bool              `json:"isLoading"`
	Err         string            `json:"error,omitempty"`
	FileName    string            `json:"fileName"`
	PendingLoad string            `json:"pendingLoad,omitempty"`
	LoadID      string            `json:"loadId,omitempty"`
	ViewType    ViewType          `json:"viewType"`
	Dataset     *stats.Dataset    `json:"-"`
	CurrentDate string            `json:"currentDate"`
	Granularity stats.Granularity `json:"timeGranularity"`
	Axis        stats.Axis        `json:"analysisType"`
}

// Initial returns the empty dashboard state.
func Initial() State {
	return State{
		ViewType:    ViewChart,
		Granularity: stats.Daily,
		Axis:        stats.AxisOperator,
	}
}

// HasData reports whether a dataset has been committed.
func (s State) HasData() bool {
	return s.Dataset != nil && len(s.Dataset.Records) > 0
}

// NavList returns the keys the navigator steps through: available dates for the daily
// view, available weeks otherwise.
func (s State) NavList() []string {
	if s.Dataset == nil {
		return nil
	}
	if s.Granularity.Weekly() {
		return s.Dataset.AvailableWeeks
	}
	return s.Dataset.AvailableDates
}

// NavIndex returns the position of the current date in NavList, or -1.
func (s State) NavIndex() int {
	if s.CurrentDate == "" {
		return -1
	}
	return slices.Index(s.NavList(), s.CurrentDate)
}

// CanPrev reports whether a previous period exists.
func (s State) CanPrev() bool {
	return !s.Loading && s.NavIndex() > 0
}

// CanNext reports whether a following period exists.
func (s State) CanNext() bool {
	i := s.NavIndex()
	return !s.Loading && i != -1 && i < len(s.NavList())-1
}

// Result aggregates the current view.
func (s State) Result() stats.Result {
	return stats.Select(s.Dataset, s.Axis, s.CurrentDate, s.Granularity)
}

// PeriodLabel is the navigator caption of the current period.
func (s State) PeriodLabel() string {
	return stats.PeriodLabel(s.CurrentDate, s.Granularity)
}
