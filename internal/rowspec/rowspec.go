// =============================================================================
// Daily Report - Row Specification
// =============================================================================
//
// This module produces the ordered list of row identifiers (room numbers and
// RV spots) for each section of the report.
//
// DEFAULT LAYOUT:
//   | Section | Ranges                  | Rows |
//   |---------|-------------------------|------|
//   | page1   | 101-112, 114-131        | 30   |
//   | page2   | 134-137                 | 4    |
//   | rv      | 1-17 excluding 6        | 16   |
//
// Ranges are inclusive of both endpoints. Exclusions are removed after the
// range is expanded; an exclusion outside the range is ignored.
//
// =============================================================================

package rowspec

import (
	"fmt"

	"github.com/ginjaninja78/daily-report/internal/types"
)

// Range is an inclusive run of identifiers with optional exclusions.
type Range struct {
	Start   int
	End     int
	Exclude []int
}

// Expand returns the identifiers of the range in ascending order.
func (r Range) Expand() []int {
	if r.End < r.Start {
		return nil
	}

	excluded := make(map[int]bool, len(r.Exclude))
	for _, v := range r.Exclude {
		excluded[v] = true
	}

	ids := make([]int, 0, r.End-r.Start+1)
	for i := r.Start; i <= r.End; i++ {
		if !excluded[i] {
			ids = append(ids, i)
		}
	}
	return ids
}

// String renders the range the way it is written in configuration.
func (r Range) String() string {
	if len(r.Exclude) == 0 {
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
	return fmt.Sprintf("%d-%d excluding %v", r.Start, r.End, r.Exclude)
}

// SectionSpec describes how the rows of one section are generated.
type SectionSpec struct {
	// Section is the section the rows belong to.
	Section types.Section

	// Label is the heading used when the section is rendered.
	Label string

	// Ranges are expanded and concatenated in order.
	Ranges []Range
}

// Identifiers returns the section's identifiers. Ranges are concatenated in
// the order given; a value produced twice is kept only once.
func (s SectionSpec) Identifiers() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, r := range s.Ranges {
		for _, id := range r.Expand() {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Default returns the standard section layout.
func Default() []SectionSpec {
	return []SectionSpec{
		{
			Section: types.SectionPage1,
			Label:   "Page 1 - Rooms",
			Ranges:  []Range{{Start: 101, End: 112}, {Start: 114, End: 131}},
		},
		{
			Section: types.SectionPage2,
			Label:   "Page 2 - Rooms",
			Ranges:  []Range{{Start: 134, End: 137}},
		},
		{
			Section: types.SectionRV,
			Label:   "RV / Storage",
			Ranges:  []Range{{Start: 1, End: 17, Exclude: []int{6}}},
		},
	}
}

// Generate builds the initial rows for every section, in spec order.
// Every row starts with empty text fields and cleared flags.
func Generate(specs []SectionSpec) [][]*types.Row {
	sections := make([][]*types.Row, 0, len(specs))
	for _, spec := range specs {
		ids := spec.Identifiers()
		rows := make([]*types.Row, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, &types.Row{Section: spec.Section, ID: id})
		}
		sections = append(sections, rows)
	}
	return sections
}

// Count returns the total number of rows the specs produce.
func Count(specs []SectionSpec) int {
	total := 0
	for _, spec := range specs {
		total += len(spec.Identifiers())
	}
	return total
}
