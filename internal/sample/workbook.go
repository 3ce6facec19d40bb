package sample

import (
	"fmt"
	"io"

	"prodstats/internal/stats"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet generated rows are written to.
const SheetName = "Processing"

// WriteWorkbook writes rows as an .xlsx workbook with a header row of Columns.
func WriteWorkbook(w io.Writer, rows []stats.RawRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := make([]any, len(Columns))
		for j, c := range Columns {
			values[j] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
