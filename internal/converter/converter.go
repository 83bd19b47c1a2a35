// =============================================================================
// Daily Report - Converter Module
// =============================================================================
//
// This module moves a report between its in-memory state and the outside
// world. It orchestrates imports (spreadsheet or CSV into the rows) and
// exports (rows and summary out to spreadsheet, CSV, PDF or plain text).
//
// IMPORT PIPELINE:
//   1. Detect the file format from the extension
//   2. Decode the file into a rows-of-cells table
//   3. Fill the report rows (positional or keyed)
//   4. Recompute total sales
//
// EXPORT PIPELINE:
//   1. Encode the report in the requested format
//   2. Archive the previous export of the same name, if any
//   3. Write the new export to the output directory
//
// CONCURRENCY:
//   A Converter holds no per-report state and may be shared. Callers must not
//   mutate a report while it is being exported; ExportAll encodes every
//   format concurrently against the same (unchanging) report.
//
// =============================================================================

package converter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ginjaninja78/daily-report/internal/config"
	"github.com/ginjaninja78/daily-report/internal/csvio"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/pdf"
	"github.com/ginjaninja78/daily-report/internal/render"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/tabular"
	"github.com/ginjaninja78/daily-report/internal/xlsxio"
	"github.com/ginjaninja78/daily-report/pkg/utils"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format is an export or import file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
)

// Formats lists every export format.
var Formats = []Format{FormatXLSX, FormatCSV, FormatPDF, FormatText}

// ParseFormat parses a format name. "txt" is accepted for text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// FormatFromPath detects an import format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported import file type %q", filepath.Ext(path))
}

// ContentType returns the MIME type of an export.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ErrNoFile is returned by ImportFile when no file was chosen.
var ErrNoFile = errors.New("no file selected")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a single import or export.
type Result struct {
	// FilePath is the imported file, or the export format for an export.
	FilePath string

	// OutputFile is the path of the written export. Empty for imports and
	// for failed exports.
	OutputFile string

	// ArchivedFile is where the previous export was copied, if there was one.
	ArchivedFile string

	// Success indicates whether the operation completed.
	Success bool

	// Skipped is set when an import had no file to read.
	Skipped bool

	// Error contains the error if the operation failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of table rows read (import) or written
	// (export), header excluded.
	RowsProcessed int

	// RowsFilled is the number of report rows updated by an import.
	RowsFilled int

	// BytesWritten is the size of an export.
	BytesWritten int

	// ProcessingTime is the time taken.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter imports and exports reports according to the main configuration.
type Converter struct {
	config *config.MainConfig
	files  *utils.FileManager
	logger *slog.Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - mainConfig: The main application configuration.
//   - logger: The logger to use. nil selects slog.Default().
func New(mainConfig *config.MainConfig, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	files := utils.NewFileManager(mainConfig.OutputDir, mainConfig.ArchiveDir)
	files.UseTimestampSubdirs = mainConfig.ArchiveDateSubdirs
	return &Converter{
		config: mainConfig,
		files:  files,
		logger: logger,
	}
}

// FileName returns the configured export file name for a format.
func (c *Converter) FileName(format Format) string {
	switch format {
	case FormatXLSX:
		return c.config.Workbook.FileName
	case FormatCSV:
		return c.config.CSV.FileName
	case FormatPDF:
		return c.config.PDF.FileName
	default:
		return "report.txt"
	}
}

// =============================================================================
// IMPORT
// =============================================================================

// ImportFile reads a spreadsheet or CSV file into the report rows.
//
// An empty path is a no-op: the result is marked Skipped with ErrNoFile and
// the report is untouched.
func (c *Converter) ImportFile(r *report.Report, path string) Result {
	startTime := time.Now()
	result := Result{FilePath: path}

	if path == "" {
		result.Skipped = true
		result.Error = ErrNoFile
		return result
	}

	file, err := os.Open(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to open import file: %w", err)
		return result
	}
	defer file.Close()

	result = c.Import(r, file, path)
	result.finish(startTime)
	return result
}

// Import decodes src (named name, for format detection) into the report.
func (c *Converter) Import(r *report.Report, src io.Reader, name string) Result {
	startTime := time.Now()
	result := Result{FilePath: name}

	format, err := FormatFromPath(name)
	if err != nil {
		result.Error = err
		return result
	}

	c.logger.Info("importing file", "file", name, "format", string(format), "mode", c.config.ImportMode)

	table, err := c.decode(src, format)
	if err != nil {
		result.Error = fmt.Errorf("failed to import %s: %w", filepath.Base(name), err)
		return result
	}

	if len(table) > 0 {
		result.Stats.RowsProcessed = len(table) - 1
	}
	result.Stats.RowsFilled = r.Import(table, c.config.ImportMode)

	c.logger.Debug("import complete",
		"rows_read", result.Stats.RowsProcessed,
		"rows_filled", result.Stats.RowsFilled,
		"total_sales", r.Summary.TotalSales,
	)

	result.Success = true
	result.finish(startTime)
	return result
}

func (c *Converter) decode(src io.Reader, format Format) (tabular.Table, error) {
	switch format {
	case FormatXLSX:
		return xlsxio.Read(src)
	case FormatCSV:
		return csvio.Read(src, c.config.CSV.Delimiter)
	}
	return nil, fmt.Errorf("format %s cannot be imported", format)
}

// =============================================================================
// EXPORT
// =============================================================================

// Encode writes the report to w in the given format.
func (c *Converter) Encode(w io.Writer, r *report.Report, format Format) error {
	switch format {
	case FormatXLSX:
		return xlsxio.Write(w, r.Table(), c.config.Workbook.SheetName)
	case FormatCSV:
		return csvio.Write(w, r.Table(), c.config.CSV.Delimiter)
	case FormatPDF:
		return pdf.Write(w, render.Pages(r, c.config.Layout()), pdf.Options{FontSize: c.config.PDF.FontSize})
	case FormatText:
		_, err := io.WriteString(w, render.Text(r))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

// Export encodes the report and writes it to the output directory under the
// configured file name. A previous export of the same name is archived
// first.
func (c *Converter) Export(r *report.Report, format Format) Result {
	startTime := time.Now()
	result := Result{FilePath: string(format)}

	var buf bytes.Buffer
	if err := c.Encode(&buf, r, format); err != nil {
		result.Error = fmt.Errorf("failed to encode %s: %w", format, err)
		return result
	}

	outputPath, archived, err := c.files.PrepareOutput(c.FileName(format))
	if err != nil {
		result.Error = fmt.Errorf("failed to prepare output: %w", err)
		return result
	}
	if archived != "" {
		result.ArchivedFile = archived
		c.logger.Debug("archived previous export", "file", archived)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	result.Stats.RowsProcessed = len(r.Rows())
	result.Stats.BytesWritten = buf.Len()
	result.Success = true
	result.finish(startTime)

	c.logger.Info("wrote export", "format", string(format), "file", outputPath, "bytes", buf.Len())
	return result
}

// ExportAll writes every format concurrently. Results are in Formats order.
func (c *Converter) ExportAll(r *report.Report) []Result {
	results := make([]Result, len(Formats))

	// A directory failure is reported once per format.
	if err := c.files.EnsureDirectories(); err != nil {
		for i, format := range Formats {
			results[i] = Result{FilePath: string(format), Error: err}
		}
		return results
	}

	var wg sync.WaitGroup
	for i, format := range Formats {
		wg.Add(1)
		go func(i int, format Format) {
			defer wg.Done()
			results[i] = c.Export(r, format)
		}(i, format)
	}
	wg.Wait()

	return results
}

// CleanArchives removes archived exports older than the configured
// retention. A retention of zero keeps everything.
func (c *Converter) CleanArchives() (int, error) {
	if c.config.ArchiveRetentionDays <= 0 {
		return 0, nil
	}
	maxAge := time.Duration(c.config.ArchiveRetentionDays) * 24 * time.Hour
	removed, err := utils.CleanOldArchives(c.config.ArchiveDir, maxAge)
	if removed > 0 {
		c.logger.Info("removed old archives", "count", removed, "dir", c.config.ArchiveDir)
	}
	return removed, err
}

// =============================================================================
// E-MAIL
// =============================================================================

// Message builds the e-mail carrying the plain-text report.
func (c *Converter) Message(r *report.Report) mailer.Message {
	subject := c.config.Email.Subject
	if r.Summary.Date != "" {
		subject = fmt.Sprintf("%s %s", subject, r.Summary.Date)
	}
	return mailer.Message{
		Subject: subject,
		Body:    render.Text(r),
		To:      c.config.Email.To,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// finish records the elapsed time since start.
func (r *Result) finish(start time.Time) {
	r.Stats.ProcessingTime = time.Since(start)
}
