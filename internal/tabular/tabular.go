// =============================================================================
// Daily Report - Tabular Codec
// =============================================================================
//
// This module maps the report's rows to and from a flat rows-of-cells table.
// The table is the interchange format for spreadsheet and CSV import/export.
//
// TABLE LAYOUT:
//   Row 0 is the fixed header:
//     Room No | Name | Rent | Tax | Misc | CheckIN | CheckOUT | Balance | Paid
//   Every following row holds one report row, in generation order
//   (page1, page2, rv).
//
// EXPORT:
//   - Flags are written as "TRUE" / "FALSE".
//   - Every other field is written verbatim.
//
// IMPORT:
//   - The header row is skipped.
//   - Table rows are assigned to report rows by POSITION; the identifier in
//     the first cell is ignored. (See FillFromTableKeyed for matching by
//     identifier instead.)
//   - A flag is true only for "TRUE", "Yes" or the number 1.
//   - Absent cells assign the empty string.
//   - Short tables update only the leading rows; extra rows are ignored.
//
// =============================================================================

package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/daily-report/internal/types"
)

// Table is a rows-of-cells structure. Cells are strings, numbers, booleans
// or nil, matching what a spreadsheet reader produces.
type Table [][]any

// Import modes.
const (
	ModePositional = "positional"
	ModeKeyed      = "keyed"
)

// FlagTrue and FlagFalse are the exported flag literals.
const (
	FlagTrue  = "TRUE"
	FlagFalse = "FALSE"
)

// =============================================================================
// EXPORT
// =============================================================================

// ToTable converts rows into a table with a header row.
func ToTable(rows []*types.Row) Table {
	table := make(Table, 0, len(rows)+1)
	table = append(table, headerRow())

	for _, row := range rows {
		if row == nil {
			continue
		}
		table = append(table, encodeRow(row))
	}
	return table
}

func headerRow() []any {
	cells := make([]any, len(types.Header))
	for i, h := range types.Header {
		cells[i] = h
	}
	return cells
}

func encodeRow(row *types.Row) []any {
	cells := make([]any, types.FieldCount)
	for _, f := range types.Fields() {
		switch {
		case f == types.FieldIdentifier:
			cells[f] = strconv.Itoa(row.ID)
		case f.IsFlag():
			cells[f] = EncodeFlag(row.Flag(f))
		default:
			cells[f] = row.Text(f)
		}
	}
	return cells
}

// EncodeFlag renders a flag as "TRUE" or "FALSE".
func EncodeFlag(v bool) string {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

// =============================================================================
// IMPORT
// =============================================================================

// FillFromTable assigns table rows to rows by position and returns the
// number of rows updated. It never fails.
func FillFromTable(rows []*types.Row, table Table) int {
	if len(table) <= 1 {
		return 0
	}

	updated := 0
	data := table[1:]
	for i, row := range rows {
		if i >= len(data) {
			break
		}
		if row == nil {
			continue
		}
		decodeRow(row, data[i])
		updated++
	}
	return updated
}

// FillFromTableKeyed assigns each table row to the row whose identifier
// matches the table row's first cell. An identifier shared by several
// sections is consumed in section order. Table rows without a matching
// identifier are ignored.
func FillFromTableKeyed(rows []*types.Row, table Table) int {
	if len(table) <= 1 {
		return 0
	}

	queues := make(map[int][]*types.Row)
	for _, row := range rows {
		if row == nil {
			continue
		}
		queues[row.ID] = append(queues[row.ID], row)
	}

	updated := 0
	for _, cells := range table[1:] {
		id, ok := identifier(cell(cells, int(types.FieldIdentifier)))
		if !ok {
			continue
		}
		queue := queues[id]
		if len(queue) == 0 {
			continue
		}
		decodeRow(queue[0], cells)
		queues[id] = queue[1:]
		updated++
	}
	return updated
}

// Fill dispatches to the import mode named by mode. Unknown modes fall back
// to positional import.
func Fill(rows []*types.Row, table Table, mode string) int {
	if mode == ModeKeyed {
		return FillFromTableKeyed(rows, table)
	}
	return FillFromTable(rows, table)
}

func decodeRow(row *types.Row, cells []any) {
	for _, f := range types.Fields() {
		if f == types.FieldIdentifier {
			continue
		}
		v := cell(cells, int(f))
		if f.IsFlag() {
			row.SetFlag(f, IsTrue(v))
		} else {
			row.SetText(f, CellString(v))
		}
	}
}

func cell(cells []any, i int) any {
	if i < len(cells) {
		return cells[i]
	}
	return nil
}

// IsTrue reports whether a cell counts as a set flag: the string "TRUE", the
// string "Yes", or the number 1. Anything else is false.
func IsTrue(v any) bool {
	switch c := v.(type) {
	case string:
		return c == FlagTrue || c == "Yes"
	case int:
		return c == 1
	case int64:
		return c == 1
	case float64:
		return c == 1
	}
	return false
}

// CellString renders a cell as a form value. Nil becomes "".
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	}
	return fmt.Sprint(v)
}

func identifier(v any) (int, bool) {
	switch c := v.(type) {
	case int:
		return c, true
	case int64:
		return int(c), true
	case float64:
		if c == float64(int(c)) {
			return int(c), true
		}
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(c))
		if err == nil {
			return id, true
		}
	}
	return 0, false
}

// Strings converts a table of strings into a Table.
func Strings(records [][]string) Table {
	table := make(Table, len(records))
	for i, record := range records {
		cells := make([]any, len(record))
		for j, v := range record {
			cells[j] = v
		}
		table[i] = cells
	}
	return table
}

// Records renders every cell of the table as a string.
func (t Table) Records() [][]string {
	records := make([][]string, len(t))
	for i, cells := range t {
		record := make([]string, len(cells))
		for j, v := range cells {
			record[j] = CellString(v)
		}
		records[i] = record
	}
	return records
}
