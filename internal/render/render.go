// =============================================================================
// Daily Report - Report Renderer
// =============================================================================
//
// This module formats a report for people rather than spreadsheets. It has
// two renderings over the same data:
//
//   TEXT (for e-mail):
//     DAILY REPORT
//     Date: 2024-03-15 | Day: Friday
//
//     SUMMARY
//     Total Cash: ...
//     ...
//
//     Page 1 - Rooms
//     Room No | Name | Rent | Tax | Misc | CheckIN | CheckOUT | Balance | Paid
//     101 | Smith | 65.00 | 5.20 |  | Yes | No |  | Yes
//     ...
//
//   PAGES (for PDF/print):
//     A sequence of draw commands (text at x/y) and page breaks. The cursor
//     advances one line per row; a new page starts once the cursor passes
//     the page-height threshold.
//
// Flags render as "Yes" / "No" in both renderings.
//
// =============================================================================

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/types"
)

// Delimiter separates fields on a rendered row.
const Delimiter = " | "

// =============================================================================
// TEXT RENDERING
// =============================================================================

// summaryLine is one labelled line of the SUMMARY block.
type summaryLine struct {
	label string
	value func(s *types.Summary) string
}

var summaryLines = []summaryLine{
	{"Total Cash", func(s *types.Summary) string { return s.TotalCash }},
	{"Total Credit", func(s *types.Summary) string { return s.TotalCredit }},
	{"Bank Deposit", func(s *types.Summary) string { return s.BankDeposit }},
	{"Total Sales", func(s *types.Summary) string { return s.TotalSales }},
	{"#2 Misc", func(s *types.Summary) string { return s.Misc2 }},
	{"Open Acct", func(s *types.Summary) string { return s.OpenAccount }},
	{"PIA #", func(s *types.Summary) string { return s.PIANumber }},
}

// Text renders the report as a plain-text block.
func Text(r *report.Report) string {
	var b strings.Builder

	b.WriteString("DAILY REPORT\n")
	fmt.Fprintf(&b, "Date: %s | Day: %s\n\n", r.Summary.Date, r.Summary.Day)

	b.WriteString("SUMMARY\n")
	for _, line := range summaryLines {
		fmt.Fprintf(&b, "%s: %s\n", line.label, line.value(&r.Summary))
	}
	b.WriteString("\n")

	for _, section := range r.Sections() {
		b.WriteString(section.Label + "\n")
		b.WriteString(HeaderLine() + "\n")
		for _, row := range section.Rows {
			if row == nil {
				continue
			}
			b.WriteString(Line(row) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HeaderLine returns the header row joined by the delimiter.
func HeaderLine() string {
	return strings.Join(types.Header, Delimiter)
}

// Line renders one row joined by the delimiter.
func Line(row *types.Row) string {
	fields := make([]string, 0, types.FieldCount)
	for _, f := range types.Fields() {
		switch {
		case f == types.FieldIdentifier:
			fields = append(fields, strconv.Itoa(row.ID))
		case f.IsFlag():
			fields = append(fields, YesNo(row.Flag(f)))
		default:
			fields = append(fields, row.Text(f))
		}
	}
	return strings.Join(fields, Delimiter)
}

// YesNo renders a flag as "Yes" or "No".
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// =============================================================================
// PAGINATED RENDERING
// =============================================================================

// CommandKind distinguishes draw commands from page breaks.
type CommandKind int

const (
	// DrawText writes Text at (X, Y).
	DrawText CommandKind = iota

	// PageBreak starts a new page.
	PageBreak
)

// Command is one instruction for a print/PDF collaborator.
type Command struct {
	Kind CommandKind
	Text string
	X    float64
	Y    float64
}

// Layout controls the paginated rendering. Units are the collaborator's
// (millimetres for A4 PDF output).
type Layout struct {
	Title      string
	Left       float64
	TitleY     float64
	Top        float64
	LineHeight float64
	SectionGap float64
	PageHeight float64
}

// DefaultLayout returns the standard A4 layout.
func DefaultLayout() Layout {
	return Layout{
		Title:      "Daily Report",
		Left:       10,
		TitleY:     10,
		Top:        20,
		LineHeight: 8,
		SectionGap: 10,
		PageHeight: 280,
	}
}

// Pages renders the report as draw commands.
func Pages(r *report.Report, layout Layout) []Command {
	cmds := []Command{{Kind: DrawText, Text: layout.Title, X: layout.Left, Y: layout.TitleY}}

	y := layout.Top
	for i, section := range r.Sections() {
		cmds = append(cmds, Command{Kind: DrawText, Text: fmt.Sprintf("Table %d", i+1), X: layout.Left, Y: y})
		y += layout.LineHeight

		for _, row := range section.Rows {
			if row == nil {
				continue
			}
			cmds = append(cmds, Command{Kind: DrawText, Text: Line(row), X: layout.Left, Y: y})
			y += layout.LineHeight
			if y > layout.PageHeight {
				cmds = append(cmds, Command{Kind: PageBreak})
				y = layout.Top
			}
		}
		y += layout.SectionGap
	}

	return cmds
}

// PageCount returns the number of pages the commands span.
func PageCount(cmds []Command) int {
	pages := 1
	for _, c := range cmds {
		if c.Kind == PageBreak {
			pages++
		}
	}
	return pages
}
