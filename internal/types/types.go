// =============================================================================
// Daily Report - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - rowspec
//   - report
//   - tabular
//   - render
//
// ROW SCHEMA:
//   Every row, regardless of section, carries the same nine fields in this
//   fixed order. The order is significant: it is the column order of the
//   tabular representation used for spreadsheet import and export.
//
//   | Room No | Name | Rent | Tax | Misc | CheckIN | CheckOUT | Balance | Paid |
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// SECTIONS
// =============================================================================

// Section identifies one of the independent groupings of rows.
type Section string

const (
	// SectionPage1 holds the first page of rooms.
	SectionPage1 Section = "page1"

	// SectionPage2 holds the second page of rooms.
	SectionPage2 Section = "page2"

	// SectionRV holds the RV / storage spots.
	SectionRV Section = "rv"
)

// Sections lists every section in report order.
var Sections = []Section{SectionPage1, SectionPage2, SectionRV}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionPage1, SectionPage2, SectionRV:
		return true
	}
	return false
}

// ParseSection converts a string into a Section.
func ParseSection(value string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown section %q", value)
	}
	return s, nil
}

// =============================================================================
// FIELDS
// =============================================================================

// Field is a position in the fixed row schema.
type Field int

const (
	FieldIdentifier Field = iota
	FieldName
	FieldRent
	FieldTax
	FieldMisc
	FieldCheckIn
	FieldCheckOut
	FieldBalance
	FieldPaid
)

// FieldCount is the number of fields in the row schema.
const FieldCount = 9

// Header is the header row of the tabular representation.
var Header = []string{"Room No", "Name", "Rent", "Tax", "Misc", "CheckIN", "CheckOUT", "Balance", "Paid"}

// fieldKeys are the form/input names of each field, in schema order.
var fieldKeys = []string{"room", "name", "rent", "tax", "misc", "checkin", "checkout", "balance", "paid"}

// Fields lists every field in schema order.
func Fields() []Field {
	fields := make([]Field, FieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// Key returns the form name of the field (e.g. "rent").
func (f Field) Key() string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return fieldKeys[f]
}

// Title returns the header label of the field (e.g. "Rent").
func (f Field) Title() string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return Header[f]
}

// IsFlag reports whether the field holds a boolean value.
func (f Field) IsFlag() bool {
	return f == FieldCheckIn || f == FieldCheckOut || f == FieldPaid
}

// IsAmount reports whether the field holds a currency amount.
func (f Field) IsAmount() bool {
	return f == FieldRent || f == FieldTax || f == FieldMisc || f == FieldBalance
}

// ParseField resolves a form name into a Field.
func ParseField(key string) (Field, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", key)
}

// =============================================================================
// ROW
// =============================================================================

// Row represents one billing/occupancy record, keyed by (Section, ID).
type Row struct {
	// Section is the grouping this row belongs to.
	Section Section

	// ID is the room number or RV spot, unique within the section.
	ID int

	Name    string
	Rent    string
	Tax     string
	Misc    string
	Balance string

	CheckIn  bool
	CheckOut bool
	Paid     bool
}

// Text returns the string value of a non-flag field.
// Flag fields and the identifier return an empty string.
func (r *Row) Text(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldRent:
		return r.Rent
	case FieldTax:
		return r.Tax
	case FieldMisc:
		return r.Misc
	case FieldBalance:
		return r.Balance
	}
	return ""
}

// SetText assigns the string value of a non-flag field.
// It is a no-op for flag fields and the identifier.
func (r *Row) SetText(f Field, value string) {
	switch f {
	case FieldName:
		r.Name = value
	case FieldRent:
		r.Rent = value
	case FieldTax:
		r.Tax = value
	case FieldMisc:
		r.Misc = value
	case FieldBalance:
		r.Balance = value
	}
}

// Flag returns the value of a boolean field.
func (r *Row) Flag(f Field) bool {
	switch f {
	case FieldCheckIn:
		return r.CheckIn
	case FieldCheckOut:
		return r.CheckOut
	case FieldPaid:
		return r.Paid
	}
	return false
}

// SetFlag assigns the value of a boolean field.
func (r *Row) SetFlag(f Field, value bool) {
	switch f {
	case FieldCheckIn:
		r.CheckIn = value
	case FieldCheckOut:
		r.CheckOut = value
	case FieldPaid:
		r.Paid = value
	}
}

// Reset clears every editable field back to its default.
func (r *Row) Reset() {
	*r = Row{Section: r.Section, ID: r.ID}
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary holds the freestanding scalar fields of a report.
// TotalSales is derived from the rows; everything else is user-entered.
type Summary struct {
	Date        string `yaml:"date"`
	Day         string `yaml:"day"`
	TotalCash   string `yaml:"total_cash"`
	TotalCredit string `yaml:"total_credit"`
	BankDeposit string `yaml:"bank_deposit"`
	TotalSales  string `yaml:"total_sales"`
	Misc2       string `yaml:"misc2"`
	OpenAccount string `yaml:"open_account"`
	PIANumber   string `yaml:"pia_number"`
}

// SummaryField names an editable summary field.
type SummaryField string

const (
	SummaryDate        SummaryField = "reportDate"
	SummaryDay         SummaryField = "reportDay"
	SummaryTotalCash   SummaryField = "totalCash"
	SummaryTotalCredit SummaryField = "totalCredit"
	SummaryBankDeposit SummaryField = "bankDeposit"
	SummaryMisc2       SummaryField = "misc2"
	SummaryOpenAccount SummaryField = "openAcct"
	SummaryPIANumber   SummaryField = "piaNumber"
)

// SummaryFields lists the user-editable summary fields in display order.
var SummaryFields = []SummaryField{
	SummaryDate,
	SummaryDay,
	SummaryTotalCash,
	SummaryTotalCredit,
	SummaryBankDeposit,
	SummaryMisc2,
	SummaryOpenAccount,
	SummaryPIANumber,
}

// Set assigns a user-editable summary field.
func (s *Summary) Set(field SummaryField, value string) error {
	switch field {
	case SummaryDate:
		s.Date = value
	case SummaryDay:
		s.Day = value
	case SummaryTotalCash:
		s.TotalCash = value
	case SummaryTotalCredit:
		s.TotalCredit = value
	case SummaryBankDeposit:
		s.BankDeposit = value
	case SummaryMisc2:
		s.Misc2 = value
	case SummaryOpenAccount:
		s.OpenAccount = value
	case SummaryPIANumber:
		s.PIANumber = value
	default:
		return fmt.Errorf("unknown summary field %q", field)
	}
	return nil
}

// Get returns a summary field by name.
func (s *Summary) Get(field SummaryField) string {
	switch field {
	case SummaryDate:
		return s.Date
	case SummaryDay:
		return s.Day
	case SummaryTotalCash:
		return s.TotalCash
	case SummaryTotalCredit:
		return s.TotalCredit
	case SummaryBankDeposit:
		return s.BankDeposit
	case SummaryMisc2:
		return s.Misc2
	case SummaryOpenAccount:
		return s.OpenAccount
	case SummaryPIANumber:
		return s.PIANumber
	}
	return ""
}
