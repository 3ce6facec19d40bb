package stats

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

// DaysPerWeek is the length of a weekly window.
const DaysPerWeek = 7

// WeekStart returns UTC midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// Go's Weekday starts at Sunday=0. Monday is the anchor.
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, time.UTC)
}

// WeekStartKey returns the Monday key for a canonical date key.
func WeekStartKey(key string) (string, bool) {
	t, ok := ParseKey(key)
	if !ok {
		return "", false
	}
	return FormatKey(WeekStart(t)), true
}

// AvailableWeeks maps date keys to their distinct Monday keys, sorted ascending.
// Unparsable keys are skipped.
func AvailableWeeks(dateKeys []string) []string {
	weeks := make(map[string]struct{})
	for _, key := range dateKeys {
		if wk, ok := WeekStartKey(key); ok {
			weeks[wk] = struct{}{}
		}
	}

	result := lo.Keys(weeks)
	slices.Sort(result)
	return result
}

// WeekDays returns the seven consecutive day keys starting at start.
func WeekDays(start string) []string {
	t, ok := ParseKey(start)
	if !ok {
		return nil
	}
	days := make([]string, DaysPerWeek)
	for i := range days {
		days[i] = FormatKey(t.AddDate(0, 0, i))
	}
	return days
}

// DayOfWeekName returns the English weekday name of a key ("Monday"), or "" if invalid.
func DayOfWeekName(key string) string {
	t, ok := ParseKey(key)
	if !ok {
		return ""
	}
	return t.Weekday().String()
}

// PeriodLabel renders the navigator caption for a key under the given granularity,
// e.g. "June 3, 2024" or "Week: 03 Jun - 09 Jun 2024".
func PeriodLabel(key string, g Granularity) string {
	if key == "" {
		return "No Date Selected"
	}
	t, ok := ParseKey(key)
	if !ok {
		return key
	}
	if g == Daily {
		return t.Format("January 2, 2006")
	}
	end := t.AddDate(0, 0, DaysPerWeek-1)
	return fmt.Sprintf("Week: %s - %s", t.Format("02 Jan"), end.Format("02 Jan 2006"))
}
