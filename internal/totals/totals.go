// Package totals derives the report's aggregate amounts from its rows.
//
// Amounts are entered as free text. Anything that does not parse as a decimal
// number, including the empty string, counts as zero; the calculator never
// fails.
package totals

import (
	"strings"

	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent of an accepted amount. Exponent
// notation such as "1e20000000" would otherwise expand every sum to millions
// of digits.
const maxExponent = 20

// Amount coerces a field value into a decimal. Invalid input, including
// values whose exponent lies outside +/-maxExponent, yields zero.
func Amount(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero
	}
	return d
}

// Sales returns rent + tax + misc summed across every row.
func Sales(rows []*types.Row) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row == nil {
			continue
		}
		total = total.Add(Amount(row.Rent)).Add(Amount(row.Tax)).Add(Amount(row.Misc))
	}
	return total
}

// ComputeTotalSales returns Sales formatted with exactly two decimals.
func ComputeTotalSales(rows []*types.Row) string {
	return Sales(rows).StringFixed(2)
}

// Balance returns the sum of the balance column.
func Balance(rows []*types.Row) string {
	total := decimal.Zero
	for _, row := range rows {
		if row == nil {
			continue
		}
		total = total.Add(Amount(row.Balance))
	}
	return total.StringFixed(2)
}
