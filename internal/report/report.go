// =============================================================================
// Daily Report - Report State
// =============================================================================
//
// This module owns the state of a single report session: the fixed row
// collection and the summary fields. Every operation (edit, import, export,
// render, clear) goes through a *Report value; nothing is global.
//
// LIFECYCLE:
//   1. New builds the rows from the section specs and stamps today's date.
//   2. Set / SetSummary / Import mutate the report in place.
//   3. Total sales is recomputed after every row mutation.
//   4. Clear resets every field and re-stamps the date.
//
// The row count and order never change after New.
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/daily-report/internal/rowspec"
	"github.com/ginjaninja78/daily-report/internal/tabular"
	"github.com/ginjaninja78/daily-report/internal/totals"
	"github.com/ginjaninja78/daily-report/internal/types"
)

// DateLayout is the layout of the report date.
const DateLayout = "2006-01-02"

// Section is one rendered grouping of rows.
type Section struct {
	Section types.Section
	Label   string
	Rows    []*types.Row
}

// Report is the state of one report session.
type Report struct {
	sections []Section
	rows     []*types.Row
	index    map[types.Section]map[int]*types.Row

	// Summary holds the freestanding summary fields.
	Summary types.Summary
}

// New creates a report with one row per identifier produced by specs.
// The date fields are stamped from now.
func New(specs []rowspec.SectionSpec, now time.Time) *Report {
	generated := rowspec.Generate(specs)

	r := &Report{
		sections: make([]Section, 0, len(specs)),
		index:    make(map[types.Section]map[int]*types.Row),
	}

	for i, spec := range specs {
		rows := generated[i]
		r.sections = append(r.sections, Section{
			Section: spec.Section,
			Label:   spec.Label,
			Rows:    rows,
		})
		if r.index[spec.Section] == nil {
			r.index[spec.Section] = make(map[int]*types.Row)
		}
		for _, row := range rows {
			r.index[spec.Section][row.ID] = row
		}
		r.rows = append(r.rows, rows...)
	}

	r.stampDate(now)
	r.Recalculate()
	return r
}

// Sections returns the report's sections in order.
func (r *Report) Sections() []Section {
	return r.sections
}

// Rows returns every row, sections concatenated in order.
func (r *Report) Rows() []*types.Row {
	return r.rows
}

// Find looks up a row by section and identifier.
func (r *Report) Find(section types.Section, id int) (*types.Row, bool) {
	row, ok := r.index[section][id]
	return row, ok
}

// Set assigns one field of one row and recomputes total sales.
// Flag fields accept "true", "on", "TRUE", "Yes" or "1" as set.
func (r *Report) Set(section types.Section, id int, field types.Field, value string) error {
	row, ok := r.Find(section, id)
	if !ok {
		return fmt.Errorf("no row %d in section %s", id, section)
	}

	switch {
	case field == types.FieldIdentifier:
		return fmt.Errorf("the %s column is read-only", field.Title())
	case field.IsFlag():
		row.SetFlag(field, parseFlag(value))
	default:
		row.SetText(field, value)
	}

	r.Recalculate()
	return nil
}

// SetSummary assigns a user-editable summary field.
func (r *Report) SetSummary(field types.SummaryField, value string) error {
	return r.Summary.Set(field, value)
}

// Recalculate recomputes the derived total sales and returns it.
func (r *Report) Recalculate() string {
	r.Summary.TotalSales = totals.ComputeTotalSales(r.rows)
	return r.Summary.TotalSales
}

// Table exports the rows as a table with a header row.
func (r *Report) Table() tabular.Table {
	return tabular.ToTable(r.rows)
}

// Import fills the rows from table using mode and recomputes total sales.
// It returns the number of rows updated.
func (r *Report) Import(table tabular.Table, mode string) int {
	updated := tabular.Fill(r.rows, table, mode)
	r.Recalculate()
	return updated
}

// Clear resets every row and summary field, then re-stamps the date.
func (r *Report) Clear(now time.Time) {
	for _, row := range r.rows {
		row.Reset()
	}
	r.Summary = types.Summary{}
	r.stampDate(now)
	r.Recalculate()
}

func (r *Report) stampDate(now time.Time) {
	r.Summary.Date = now.Format(DateLayout)
	r.Summary.Day = now.Weekday().String()
}

func parseFlag(value string) bool {
	switch value {
	case "true", "on", "1", tabular.FlagTrue, "Yes":
		return true
	}
	return false
}
