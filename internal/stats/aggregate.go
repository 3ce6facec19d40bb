package stats

import "slices"

// CountRow holds per-operation counts for one category value.
type CountRow struct {
	Category string         `json:"name"`
	Total    int            `json:"total"`
	Counts   map[string]int `json:"counts"`
}

// CountMatrix is a list of CountRows sorted by descending total.
type CountMatrix []CountRow

// Total sums the totals of every row.
func (m CountMatrix) Total() int {
	n := 0
	for _, r := range m {
		n += r.Total
	}
	return n
}

// Aggregate counts records per category value and operation. Every value in
// categories gets an accumulator; records whose category or operation is not in the
// given universes are ignored. Rows with a zero total are dropped and the rest are
// sorted by descending total, ties keeping the order of categories.
func Aggregate(records []Record, axis Axis, categories, operations []string) CountMatrix {
	if len(categories) == 0 || len(operations) == 0 {
		return CountMatrix{}
	}

	knownOps := make(map[string]bool, len(operations))
	for _, op := range operations {
		knownOps[op] = true
	}

	index := make(map[string]int, len(categories))
	rows := make([]CountRow, 0, len(categories))
	for _, cat := range categories {
		if _, dup := index[cat]; dup {
			continue
		}
		counts := make(map[string]int, len(knownOps))
		for op := range knownOps {
			counts[op] = 0
		}
		index[cat] = len(rows)
		rows = append(rows, CountRow{Category: cat, Counts: counts})
	}

	for _, rec := range records {
		i, ok := index[axis.Value(rec)]
		if !ok || !knownOps[rec.OperationName] {
			continue
		}
		rows[i].Counts[rec.OperationName]++
		rows[i].Total++
	}

	result := slices.DeleteFunc(rows, func(r CountRow) bool { return r.Total == 0 })
	slices.SortStableFunc(result, func(a, b CountRow) int { return b.Total - a.Total })
	return CountMatrix(result)
}
