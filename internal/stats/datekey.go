package stats

import (
	"regexp"
	"strconv"
	"time"
)

// KeyLayout is the canonical calendar-day key format.
const KeyLayout = "2006-01-02"

var (
	completedPrefix = regexp.MustCompile(`(?i)^Completed\s+`)
	dayMonthYear    = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	canonicalKey    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseLastOperation extracts the completion date from a free-text "last operation"
// field such as "Completed 05/03/2024" or "05-03-2024". Only day-month-year order is
// recognised. The result is UTC midnight; ok is false when no valid date is found.
//
// Calendar validity is strict: 31/02/2024 is rejected rather than rolled over.
func ParseLastOperation(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	cleaned := completedPrefix.ReplaceAllString(text, "")
	m := dayMonthYear.FindStringSubmatch(cleaned)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 || month < 1 || month > 12 || year <= 1900 || year >= 2100 {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}

// FormatKey renders the UTC calendar day of t as YYYY-MM-DD. The zero time has no key.
func FormatKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(KeyLayout)
}

// ParseKey parses a canonical YYYY-MM-DD key into UTC midnight of that day.
// Keys naming a day that does not exist (2024-02-30) are rejected.
func ParseKey(key string) (time.Time, bool) {
	if !canonicalKey.MatchString(key) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(KeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts a canonical key by n calendar days.
func AddDays(key string, n int) (string, bool) {
	t, ok := ParseKey(key)
	if !ok {
		return "", false
	}
	return FormatKey(t.AddDate(0, 0, n)), true
}

// DateKeyFromLastOperation is ParseLastOperation followed by FormatKey.
func DateKeyFromLastOperation(text string) string {
	t, ok := ParseLastOperation(text)
	if !ok {
		return ""
	}
	return FormatKey(t)
}
