package stats

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func row(operator, operation, lastOp string) RawRow {
	return RawRow{
		ColOperatorName:  operator,
		ColOperationName: operation,
		ColLastOperation: lastOp,
		ColTrim:          "leather",
		ColCarpetType:    "Type A",
		ColCarpetColour:  "black",
		ColSource:        "DEALER ORDER",
	}
}

func TestBuild_Scenario(t *testing.T) {
	rows := []RawRow{
		row("Alice", "CUT", "Completed 03/06/2024"),
		row("Alice", "SEW", "Completed 03/06/2024"),
		row("Alice", "CUT", "Completed 10/06/2024"),
	}

	ds, err := Build(rows)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if want := []string{"2024-06-03", "2024-06-10"}; !slices.Equal(ds.AvailableDates, want) {
		t.Errorf("AvailableDates = %v, want %v", ds.AvailableDates, want)
	}
	if want := []string{"2024-06-03", "2024-06-10"}; !slices.Equal(ds.AvailableWeeks, want) {
		t.Errorf("AvailableWeeks = %v, want %v", ds.AvailableWeeks, want)
	}
	if ds.InitialDate != "2024-06-03" {
		t.Errorf("InitialDate = %s, want earliest date", ds.InitialDate)
	}
	if ds.LatestDate != "2024-06-10" {
		t.Errorf("LatestDate = %s", ds.LatestDate)
	}
	if want := []string{"CUT", "SEW"}; !slices.Equal(ds.Operations, want) {
		t.Errorf("Operations = %v, want %v", ds.Operations, want)
	}
	if !slices.Equal(ds.Trims, []string{"LEATHER"}) || !slices.Equal(ds.CarpetColours, []string{"BLACK"}) {
		t.Errorf("upper-cased sets = %v / %v", ds.Trims, ds.CarpetColours)
	}
	if !slices.Equal(ds.Sources, []string{"DEALER"}) {
		t.Errorf("Sources = %v", ds.Sources)
	}

	daily := Aggregate(DayRecords(ds, "2024-06-03"), AxisOperator, ds.Operators, ds.Operations)
	if len(daily) != 1 {
		t.Fatalf("daily rows = %d, want 1", len(daily))
	}
	got := daily[0]
	if got.Category != "Alice" || got.Total != 2 || got.Counts["CUT"] != 1 || got.Counts["SEW"] != 1 {
		t.Errorf("daily aggregate = %+v", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyInput", err)
	}

	rows := []RawRow{row("A", "CUT", "yesterday"), row("B", "SEW", "31/02/2024"), {}}
	if _, err := Build(rows); !errors.Is(err, ErrNoValidDates) {
		t.Errorf("Build(bad dates) error = %v, want ErrNoValidDates", err)
	}
}

func TestBuild_PartialRejection(t *testing.T) {
	rows := []RawRow{
		row("Alice", "CUT", "Completed 04/06/2024"),
		row("Zed", "SEW", "unknown"),
		{ColLastOperation: "05/06/2024"},
	}
	ds, err := Build(rows)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ds.Rejected != 1 || len(ds.Records) != 2 {
		t.Errorf("Rejected = %d, records = %d", ds.Rejected, len(ds.Records))
	}
	// Operators come only from retained rows; the missing operator adds nothing.
	if !slices.Equal(ds.Operators, []string{"Alice"}) {
		t.Errorf("Operators = %v", ds.Operators)
	}
	if !slices.Contains(ds.Trims, NotAvailable) {
		t.Errorf("Trims = %v, want N/A for the bare row", ds.Trims)
	}
	for _, rec := range ds.Records {
		if _, ok := ParseKey(rec.DateKey); !ok {
			t.Errorf("record with unparsable key %q retained", rec.DateKey)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	rows := []RawRow{
		row("Frank", "DISPATCH", "12/06/2024"),
		row("Alice", "CUT", "11/06/2024"),
		row("Charlie", "SEW", "03/06/2024"),
		row("Bob", "CUT", "20/06/2024"),
	}
	first, err := Build(rows)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(rows)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build() is not deterministic:\n%+v\n%+v", first, second)
	}
	if !slices.IsSorted(first.Operators) || !slices.IsSorted(first.AvailableDates) {
		t.Errorf("derived lists not sorted: %v %v", first.Operators, first.AvailableDates)
	}
}

func TestDataset_HasDate(t *testing.T) {
	ds, _ := Build([]RawRow{row("A", "CUT", "03/06/2024"), row("A", "CUT", "05/06/2024")})
	if !ds.HasDate("2024-06-05") || ds.HasDate("2024-06-04") {
		t.Error("HasDate() mismatch")
	}
	var nilDS *Dataset
	if nilDS.HasDate("2024-06-05") {
		t.Error("nil dataset has no dates")
	}
}
