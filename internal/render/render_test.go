package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/rowspec"
	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReport(t *testing.T) *report.Report {
	t.Helper()
	r := report.New(rowspec.Default(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, r.Set(types.SectionPage1, 101, types.FieldName, "Smith"))
	require.NoError(t, r.Set(types.SectionPage1, 101, types.FieldRent, "65.00"))
	require.NoError(t, r.Set(types.SectionPage1, 101, types.FieldCheckIn, "true"))
	require.NoError(t, r.SetSummary(types.SummaryTotalCash, "120"))
	require.NoError(t, r.SetSummary(types.SummaryPIANumber, "77"))
	return r
}

func TestTextHeaderAndSummary(t *testing.T) {
	text := Text(newReport(t))

	assert.True(t, strings.HasPrefix(text, "DAILY REPORT\nDate: 2024-03-15 | Day: Friday\n\nSUMMARY\n"))
	assert.Contains(t, text, "Total Cash: 120\n")
	assert.Contains(t, text, "Total Credit: \n")
	assert.Contains(t, text, "Total Sales: 65.00\n")
	assert.Contains(t, text, "#2 Misc: \n")
	assert.Contains(t, text, "Open Acct: \n")
	assert.Contains(t, text, "PIA #: 77\n")
}

func TestTextSectionBlocks(t *testing.T) {
	text := Text(newReport(t))

	header := "Room No | Name | Rent | Tax | Misc | CheckIN | CheckOUT | Balance | Paid"
	labels := []string{"Page 1 - Rooms", "Page 2 - Rooms", "RV / Storage"}

	last := -1
	for _, label := range labels {
		assert.Equal(t, 1, strings.Count(text, label+"\n"), label)
		idx := strings.Index(text, label+"\n"+header+"\n")
		require.GreaterOrEqual(t, idx, 0, label)
		assert.Greater(t, idx, last, "sections in order")
		last = idx
	}
	assert.Equal(t, 3, strings.Count(text, header))

	assert.Contains(t, text, "101 | Smith | 65.00 |  |  | Yes | No |  | No\n")
	assert.Contains(t, text, "137 |  |  |  |  | No | No |  | No\n")
	assert.NotContains(t, text, "\n6 | ")
}

func TestLine(t *testing.T) {
	row := &types.Row{ID: 12, Name: "Lee", Tax: "3", CheckOut: true, Balance: "1", Paid: true}
	assert.Equal(t, "12 | Lee |  | 3 |  | No | Yes | 1 | Yes", Line(row))
}

func TestPages(t *testing.T) {
	cmds := Pages(newReport(t), DefaultLayout())

	require.NotEmpty(t, cmds)
	assert.Equal(t, Command{Kind: DrawText, Text: "Daily Report", X: 10, Y: 10}, cmds[0])
	assert.Equal(t, Command{Kind: DrawText, Text: "Table 1", X: 10, Y: 20}, cmds[1])
	assert.Equal(t, Command{Kind: DrawText, Text: "101 | Smith | 65.00 |  |  | Yes | No |  | No", X: 10, Y: 28}, cmds[2])

	// title + 3 labels + 50 rows + 1 page break
	assert.Len(t, cmds, 55)
	assert.Equal(t, 2, PageCount(cmds))

	var labels []string
	for _, c := range cmds {
		if c.Kind == DrawText && strings.HasPrefix(c.Text, "Table ") {
			labels = append(labels, c.Text)
		}
	}
	assert.Equal(t, []string{"Table 1", "Table 2", "Table 3"}, labels)
}

func TestPagesResetCursorAfterBreak(t *testing.T) {
	cmds := Pages(newReport(t), DefaultLayout())

	for i, c := range cmds {
		if c.Kind != PageBreak {
			continue
		}
		require.Less(t, i+1, len(cmds))
		assert.Equal(t, 20.0, cmds[i+1].Y)
		assert.Greater(t, cmds[i-1].Y, 0.0)
	}
}

func TestPagesSmallPage(t *testing.T) {
	layout := DefaultLayout()
	layout.PageHeight = 60

	cmds := Pages(newReport(t), layout)
	assert.Greater(t, PageCount(cmds), 5)
	for _, c := range cmds {
		if c.Kind == DrawText && c.Text != layout.Title {
			assert.LessOrEqual(t, c.Y, layout.PageHeight+layout.LineHeight+layout.SectionGap)
		}
	}
}
