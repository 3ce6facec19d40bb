package dashboard

import "prodstats/internal/stats"

// Action is a state transition request.
type Action interface{ isAction() }

// StartLoad marks a load as pending. The committed dataset stays visible until the
// load finishes.
type StartLoad struct {
	LoadID   string
	FileName string
}

// LoadSucceeded commits a dataset. It is ignored unless LoadID is the pending load.
type LoadSucceeded struct {
	LoadID  string
	Dataset *stats.Dataset
}

// LoadFailed records a load error. It is ignored unless LoadID is the pending load.
type LoadFailed struct {
	LoadID string
	Err    string
}

type SetAxis struct{ Axis stats.Axis }

// SetGranularity switches the time window. When Date is empty the current date is
// snapped to fit the new granularity.
type SetGranularity struct {
	Granularity stats.Granularity
	Date        string
}

type SetCurrentDate struct{ Date string }

type SetViewType struct{ ViewType ViewType }

type Previous struct{}

type Next struct{}

func (StartLoad) isAction()      {}
func (LoadSucceeded) isAction()  {}
func (LoadFailed) isAction()     {}
func (SetAxis) isAction()        {}
func (SetGranularity) isAction() {}
func (SetCurrentDate) isAction() {}
func (SetViewType) isAction()    {}
func (Previous) isAction()       {}
func (Next) isAction()           {}

// Reduce applies a to s and returns the resulting state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case StartLoad:
		s.Loading = true
		s.Err = ""
		s.PendingLoad = a.LoadID
		s.FileName = a.FileName

	case LoadSucceeded:
		if a.LoadID != s.PendingLoad || a.Dataset == nil {
			return s
		}
		s.Loading = false
		s.Err = ""
		s.PendingLoad = ""
		s.LoadID = a.LoadID
		s.Dataset = a.Dataset
		s.CurrentDate = a.Dataset.InitialDate
		s.Granularity = stats.Daily
		s.ViewType = ViewChart

	case LoadFailed:
		if a.LoadID != s.PendingLoad {
			return s
		}
		s.Loading = false
		s.PendingLoad = ""
		s.Err = a.Err

	case SetAxis:
		s.Axis = a.Axis

	case SetGranularity:
		date := a.Date
		if date == "" {
			date = snapDate(s, a.Granularity)
		}
		s.Granularity = a.Granularity
		s.CurrentDate = date
		if a.Granularity == stats.WeeklyPerDay {
			s.ViewType = ViewChart
		}

	case SetCurrentDate:
		s.CurrentDate = a.Date

	case SetViewType:
		// The per-day breakdown only has a chart rendering.
		if s.Granularity == stats.WeeklyPerDay {
			return s
		}
		s.ViewType = a.ViewType

	case Previous:
		if s.CanPrev() {
			s.CurrentDate = s.NavList()[s.NavIndex()-1]
		}

	case Next:
		if s.CanNext() {
			s.CurrentDate = s.NavList()[s.NavIndex()+1]
		}
	}
	return s
}

// snapDate moves the current date onto the list the new granularity navigates.
func snapDate(s State, g stats.Granularity) string {
	if s.CurrentDate == "" {
		return ""
	}
	if g.Weekly() {
		if wk, ok := stats.WeekStartKey(s.CurrentDate); ok {
			return wk
		}
		return s.CurrentDate
	}

	if s.Dataset == nil || s.Dataset.HasDate(s.CurrentDate) {
		return s.CurrentDate
	}
	end, ok := stats.AddDays(s.CurrentDate, stats.DaysPerWeek-1)
	if !ok {
		return s.CurrentDate
	}
	for _, d := range s.Dataset.AvailableDates {
		if d >= s.CurrentDate && d <= end {
			return d
		}
	}
	return s.CurrentDate
}
