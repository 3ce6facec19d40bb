// Package ingest turns spreadsheets, remote example files and generated samples into
// raw rows for the dataset builder.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"prodstats/internal/stats"

	"github.com/xuri/excelize/v2"
)

// ErrMalformedSource is returned when a file or download cannot be decoded into rows.
var ErrMalformedSource = errors.New("malformed source")

// ReadWorkbook decodes the first worksheet of an .xlsx workbook. The first row is the
// header; every header column is present in each row, blank cells as "". Rows with no
// values and columns with a blank header are skipped.
func ReadWorkbook(r io.Reader) ([]stats.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedSource)
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	return RowsFromGrid(grid), nil
}

// RowsFromGrid maps a header-first cell grid to raw rows.
func RowsFromGrid(grid [][]string) []stats.RawRow {
	if len(grid) == 0 {
		return []stats.RawRow{}
	}

	type column struct {
		index int
		name  string
	}
	seen := make(map[string]bool, len(grid[0]))
	columns := make([]column, 0, len(grid[0]))
	for i, h := range grid[0] {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, column{index: i, name: h})
	}

	rows := make([]stats.RawRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		if blank(cells) {
			continue
		}
		row := make(stats.RawRow, len(columns))
		for _, c := range columns {
			v := ""
			if c.index < len(cells) {
				v = cells[c.index]
			}
			row[c.name] = v
		}
		rows = append(rows, row)
	}
	return rows
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
