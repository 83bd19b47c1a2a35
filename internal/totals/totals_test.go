package totals

import (
	"testing"
	"time"

	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotalSalesEmpty(t *testing.T) {
	assert.Equal(t, "0.00", ComputeTotalSales(nil))
	assert.Equal(t, "0.00", ComputeTotalSales([]*types.Row{}))
}

func TestComputeTotalSales(t *testing.T) {
	tests := []struct {
		name     string
		rows     []*types.Row
		expected string
	}{
		{
			name:     "non-numeric rent is zero",
			rows:     []*types.Row{{Rent: "abc", Tax: "10", Misc: ""}},
			expected: "10.00",
		},
		{
			name: "sums across rows and fields",
			rows: []*types.Row{
				{Rent: "50.25", Tax: "4.75", Misc: "1"},
				{Rent: "100", Tax: "", Misc: "0.10"},
			},
			expected: "156.10",
		},
		{
			name:     "balance is not part of sales",
			rows:     []*types.Row{{Rent: "10", Balance: "999"}},
			expected: "10.00",
		},
		{
			name:     "negative amounts are summed",
			rows:     []*types.Row{{Rent: "20", Misc: "-5.5"}},
			expected: "14.50",
		},
		{
			name:     "rounds to two decimals",
			rows:     []*types.Row{{Rent: "0.105"}, {Tax: "0.001"}},
			expected: "0.11",
		},
		{
			name:     "surrounding whitespace is tolerated",
			rows:     []*types.Row{{Rent: " 12 "}},
			expected: "12.00",
		},
		{
			name:     "nil rows are skipped",
			rows:     []*types.Row{nil, {Tax: "3"}},
			expected: "3.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTotalSales(tt.rows))
		})
	}
}

func TestAmount(t *testing.T) {
	assert.True(t, Amount("").IsZero())
	assert.True(t, Amount("twelve").IsZero())
	assert.Equal(t, "12.5", Amount("12.50").String())
	assert.Equal(t, "1500", Amount("1.5e3").String())
}

func TestAmountRejectsHugeExponents(t *testing.T) {
	for _, value := range []string{"1e999999999", "1e20000000", "1e-5000000", "5E21"} {
		assert.True(t, Amount(value).IsZero(), value)
	}

	start := time.Now()
	got := ComputeTotalSales([]*types.Row{{Rent: "1e999999999", Tax: "1e20000000", Misc: "4"}})
	assert.Equal(t, "4.00", got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBalance(t *testing.T) {
	rows := []*types.Row{{Balance: "10"}, {Balance: "x"}, {Balance: "2.5"}}
	assert.Equal(t, "12.50", Balance(rows))
}
