package stats

import (
	"slices"
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"Monday", "2024-06-03", "2024-06-03"},
		{"Wednesday", "2024-06-05", "2024-06-03"},
		{"Saturday", "2024-06-08", "2024-06-03"},
		{"Sunday", "2024-06-09", "2024-06-03"},
		{"AcrossMonth", "2024-03-02", "2024-02-26"},
		{"AcrossYear", "2025-01-01", "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := WeekStartKey(tt.date); got != tt.want {
				t.Errorf("WeekStartKey(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestWeekStart_Properties(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i).Add(17 * time.Hour)
		ws := WeekStart(d)
		if ws.Weekday() != time.Monday {
			t.Fatalf("WeekStart(%v) = %v, not a Monday", d, ws)
		}
		if d.Before(ws) || !d.Before(ws.AddDate(0, 0, DaysPerWeek)) {
			t.Fatalf("WeekStart(%v) = %v, date outside week", d, ws)
		}
		if ws.Hour() != 0 || ws.Location() != time.UTC {
			t.Fatalf("WeekStart(%v) = %v, want UTC midnight", d, ws)
		}
	}
}

func TestAvailableWeeks(t *testing.T) {
	keys := []string{"2024-06-10", "2024-06-03", "2024-06-05", "2024-06-09", "bad", "2024-05-31"}
	got := AvailableWeeks(keys)
	want := []string{"2024-05-27", "2024-06-03", "2024-06-10"}
	if !slices.Equal(got, want) {
		t.Fatalf("AvailableWeeks() = %v, want %v", got, want)
	}
	for _, wk := range got {
		if DayOfWeekName(wk) != "Monday" {
			t.Errorf("week %s is not a Monday", wk)
		}
	}

	if got := AvailableWeeks(nil); len(got) != 0 {
		t.Errorf("AvailableWeeks(nil) = %v, want empty", got)
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays("2024-06-03")
	if len(days) != DaysPerWeek {
		t.Fatalf("WeekDays() returned %d days", len(days))
	}
	if days[0] != "2024-06-03" || days[6] != "2024-06-09" {
		t.Errorf("WeekDays() = %v", days)
	}
	if WeekDays("nope") != nil {
		t.Error("WeekDays() on invalid key should be nil")
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		key  string
		g    Granularity
		want string
	}{
		{"2024-06-03", Daily, "June 3, 2024"},
		{"2024-06-03", Weekly, "Week: 03 Jun - 09 Jun 2024"},
		{"2024-12-30", WeeklyPerDay, "Week: 30 Dec - 05 Jan 2025"},
		{"", Daily, "No Date Selected"},
		{"junk", Daily, "junk"},
	}
	for _, tt := range tests {
		if got := PeriodLabel(tt.key, tt.g); got != tt.want {
			t.Errorf("PeriodLabel(%q, %s) = %q, want %q", tt.key, tt.g, got, tt.want)
		}
	}
}
