// =============================================================================
// Daily Report - CSV Codec
// =============================================================================
//
// This module reads and writes the report's tabular representation as CSV.
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon)
//   - Variable number of fields per row (short rows are allowed)
//   - Lazy quotes for hand-edited files
//
// CSV has no cell types: every cell is read back as a string. A flag column
// is therefore set only by the literals "TRUE" or "Yes".
//
// =============================================================================

package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/daily-report/internal/tabular"
)

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// Read parses CSV data into a table.
//
// PARAMETERS:
//   - r: The CSV bytes.
//   - delimiter: The field delimiter (see Delimiter for accepted names).
//
// RETURNS:
//   - The rows-of-cells table, header row included. Empty cells are absent.
//   - An error if the CSV is malformed.
func Read(r io.Reader, delimiter string) (tabular.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	configureReader(reader, delimiter)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	table := make(tabular.Table, len(records))
	for i, record := range records {
		cells := make([]any, len(record))
		for j, v := range record {
			if v != "" {
				cells[j] = v
			}
		}
		table[i] = cells
	}

	return table, nil
}

// ReadFile opens a CSV file and parses it into a table.
func ReadFile(path, delimiter string) (tabular.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, delimiter)
}

// configureReader configures the CSV reader.
func configureReader(reader *csv.Reader, delimiter string) {
	reader.Comma = Delimiter(delimiter)

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true
}

// Delimiter resolves a configured delimiter name into a rune.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	}
	if len(name) > 0 {
		return rune(name[0])
	}
	return ','
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write encodes the table as CSV.
func Write(w io.Writer, table tabular.Table, delimiter string) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter(delimiter)

	if err := writer.WriteAll(table.Records()); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

// WriteFile writes the table to a CSV file at path.
func WriteFile(path string, table tabular.Table, delimiter string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, table, delimiter); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
