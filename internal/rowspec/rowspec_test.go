package rowspec

import (
	"testing"

	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeExpand(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		expected []int
	}{
		{
			name:     "inclusive endpoints",
			r:        Range{Start: 134, End: 137},
			expected: []int{134, 135, 136, 137},
		},
		{
			name:     "exclusion removed",
			r:        Range{Start: 1, End: 17, Exclude: []int{6}},
			expected: []int{1, 2, 3, 4, 5, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
		},
		{
			name:     "exclusion outside range is ignored",
			r:        Range{Start: 1, End: 3, Exclude: []int{42}},
			expected: []int{1, 2, 3},
		},
		{
			name:     "single value",
			r:        Range{Start: 5, End: 5},
			expected: []int{5},
		},
		{
			name:     "inverted range is empty",
			r:        Range{Start: 5, End: 4},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Expand())
		})
	}
}

func TestDefaultLayout(t *testing.T) {
	specs := Default()
	require.Len(t, specs, 3)

	assert.Equal(t, types.SectionPage1, specs[0].Section)
	assert.Equal(t, types.SectionPage2, specs[1].Section)
	assert.Equal(t, types.SectionRV, specs[2].Section)

	page1 := specs[0].Identifiers()
	assert.Len(t, page1, 30)
	assert.Equal(t, 101, page1[0])
	assert.Equal(t, 112, page1[11])
	assert.Equal(t, 114, page1[12])
	assert.Equal(t, 131, page1[29])
	assert.NotContains(t, page1, 113)

	assert.Equal(t, []int{134, 135, 136, 137}, specs[1].Identifiers())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}, specs[2].Identifiers())

	assert.Equal(t, 50, Count(specs))
}

func TestIdentifiersStrictlyAscending(t *testing.T) {
	for _, spec := range Default() {
		ids := spec.Identifiers()
		for i := 1; i < len(ids); i++ {
			assert.Less(t, ids[i-1], ids[i], "section %s", spec.Section)
		}
	}
}

func TestIdentifiersDropDuplicates(t *testing.T) {
	spec := SectionSpec{
		Section: types.SectionPage1,
		Ranges:  []Range{{Start: 1, End: 3}, {Start: 3, End: 5}},
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, spec.Identifiers())
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(Default())
	second := Generate(Default())
	require.Equal(t, first, second)

	require.Len(t, first, 3)
	for i, rows := range first {
		for _, row := range rows {
			assert.Equal(t, Default()[i].Section, row.Section)
			assert.Empty(t, row.Name)
			assert.False(t, row.Paid)
		}
	}
}
