// =============================================================================
// Daily Report - XLSX Workbook Codec
// =============================================================================
//
// This module reads and writes the report's tabular representation as an
// XLSX workbook.
//
// READING:
//   - Only the first sheet is read; any sheet name is accepted.
//   - Numeric cells are returned as float64 so that a 1 in a flag column is
//     recognised as set. Every other cell is returned as its displayed text.
//   - Trailing empty cells are absent from a row.
//
// WRITING:
//   - A single sheet (default "Report") holds the table, starting at A1.
//   - Every cell is written as a string, so values round-trip verbatim.
//
// =============================================================================

package xlsxio

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ginjaninja78/daily-report/internal/tabular"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the sheet written when none is given.
const DefaultSheetName = "Report"

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadFile opens an XLSX file and returns the table on its first sheet.
func ReadFile(path string) (tabular.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses an XLSX workbook and returns the table on its first sheet.
//
// PARAMETERS:
//   - r: The raw workbook bytes.
//
// RETURNS:
//   - The rows-of-cells table, header row included.
//   - An error if the workbook cannot be parsed or has no sheets.
func Read(r io.Reader) (tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table := make(tabular.Table, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, value := range row {
			cells[j] = readCell(f, sheetName, i, j, value)
		}
		table[i] = cells
	}

	return table, nil
}

// readCell converts a displayed cell value into a table cell. Numeric cells
// become float64; everything else stays as text.
func readCell(f *excelize.File, sheetName string, row, col int, value string) any {
	if value == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return value
	}

	cellType, err := f.GetCellType(sheetName, axis)
	if err != nil {
		return value
	}

	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		raw, err := f.GetCellValue(sheetName, axis, excelize.Options{RawCellValue: true})
		if err != nil {
			return value
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return n
		}
	}

	return value
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write encodes the table as an XLSX workbook with a single sheet.
//
// PARAMETERS:
//   - w: The destination for the workbook bytes.
//   - table: The rows-of-cells table, header row included.
//   - sheetName: The name of the single sheet. Empty means "Report".
func Write(w io.Writer, table tabular.Table, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, record := range table.Records() {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}

		cells := make([]any, len(record))
		for j, v := range record {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}

	return nil
}

// WriteFile writes the table to an XLSX file at path.
func WriteFile(path string, table tabular.Table, sheetName string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}

	if err := Write(file, table, sheetName); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
