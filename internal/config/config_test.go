package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/daily-report/internal/rowspec"
	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMainConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, "report.xlsx", config.Workbook.FileName)
	assert.Equal(t, "Report", config.Workbook.SheetName)
	assert.Equal(t, "report.pdf", config.PDF.FileName)
	assert.Equal(t, "positional", config.ImportMode)
	assert.Equal(t, "Daily Report", config.Email.Subject)
	assert.Equal(t, 30*time.Second, config.Email.Timeout)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, rowspec.Default(), config.SectionSpecs())
	assert.Equal(t, 280.0, config.Layout().PageHeight)
}

func TestLoadMainConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
output_dir: /tmp/reports
import_mode: keyed
log_format: json
archive_date_subdirs: true
sections:
  - name: page1
    ranges:
      - {start: 1, end: 3}
  - name: page2
    ranges:
      - {start: 10, end: 11}
  - name: rv
    label: Spots
    ranges:
      - {start: 1, end: 5, exclude: [2]}
workbook:
  sheet_name: Daily
email:
  service_id: service_x
  timeout: 5s
pdf:
  page_height: 200
`)

	config, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", config.OutputDir)
	assert.Equal(t, "keyed", config.ImportMode)
	assert.True(t, config.ArchiveDateSubdirs)
	assert.Equal(t, "Daily", config.Workbook.SheetName)
	assert.Equal(t, "report.xlsx", config.Workbook.FileName)
	assert.Equal(t, "service_x", config.Email.ServiceID)
	assert.Equal(t, 5*time.Second, config.Email.Timeout)
	assert.Equal(t, 200.0, config.Layout().PageHeight)
	assert.Equal(t, 8.0, config.Layout().LineHeight)

	specs := config.SectionSpecs()
	require.Len(t, specs, 3)
	assert.Equal(t, "Page 1 - Rooms", specs[0].Label)
	assert.Equal(t, []int{1, 2, 3}, specs[0].Identifiers())
	assert.Equal(t, []int{10, 11}, specs[1].Identifiers())
	assert.Equal(t, types.SectionRV, specs[2].Section)
	assert.Equal(t, "Spots", specs[2].Label)
	assert.Equal(t, []int{1, 3, 4, 5}, specs[2].Identifiers())
}

func TestLoadMainConfigValidation(t *testing.T) {
	const page1 = "  - name: page1\n    ranges: [{start: 1, end: 2}]\n"
	const page2 = "  - name: page2\n    ranges: [{start: 3, end: 4}]\n"
	const rv = "  - name: rv\n    ranges: [{start: 1, end: 2}]\n"

	tests := []struct {
		name    string
		content string
	}{
		{"unknown section", "sections:\n" + page1 + page2 + "  - name: page9\n    ranges: [{start: 1, end: 2}]\n"},
		{"duplicate section", "sections:\n" + page1 + rv + rv},
		{"missing section", "sections:\n" + page1 + rv},
		{"out of order", "sections:\n" + rv + page1 + page2},
		{"extra section", "sections:\n" + page1 + page2 + rv + rv},
		{"inverted range", "sections:\n" + page1 + page2 + "  - name: rv\n    ranges: [{start: 5, end: 2}]\n"},
		{"no ranges", "sections:\n" + page1 + page2 + "  - name: rv\n"},
		{"bad import mode", "import_mode: fuzzy\n"},
		{"bad log format", "log_format: xml\n"},
		{"malformed yaml", "sections: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeFile(t, "config.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfigAcceptsFullLayout(t *testing.T) {
	page1 := "  - name: page1\n    ranges: [{start: 1, end: 2}]\n"
	page2 := "  - name: page2\n    ranges: [{start: 3, end: 4}]\n"
	rv := "  - name: rv\n    ranges: [{start: 1, end: 2}]\n"

	config, err := LoadMainConfig(writeFile(t, "config.yaml", "sections:\n"+page1+page2+rv))
	require.NoError(t, err)
	require.Len(t, config.Sections, 3)
	assert.False(t, config.ArchiveDateSubdirs)
}

func TestValidateAfterOverride(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	config.ImportMode = "fuzzy"
	assert.Error(t, config.Validate())
}

func TestLoadSummary(t *testing.T) {
	path := writeFile(t, "summary.yaml", `
date: "2024-03-15"
day: Friday
total_cash: "120.00"
total_credit: "80.00"
bank_deposit: "200.00"
misc2: "5"
open_account: "0"
pia_number: "PIA-1"
`)

	summary, err := LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, "120.00", summary.TotalCash)
	assert.Equal(t, "PIA-1", summary.PIANumber)
	assert.Equal(t, "Friday", summary.Day)

	_, err = LoadSummary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
